package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"ShapeBoard/internal/board"
	"ShapeBoard/internal/config"
	"ShapeBoard/internal/export"
	"ShapeBoard/internal/logging"
	"ShapeBoard/internal/net"
	"ShapeBoard/internal/render"
	"ShapeBoard/internal/shape"
	"ShapeBoard/internal/ui"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/alecthomas/kong"
	"go.uber.org/zap"
)

const appID = "io.github.shapeboard"

type CLI struct {
	Config string `short:"c" type:"path" help:"Config file. Defaults to $XDG_CONFIG_HOME/shapeboard/config.toml."`
	Share  bool   `short:"s" help:"Host the board for peers on the local network."`

	Menu       menuCmd   `cmd:"" default:"withargs" help:"Menu-driven demo: typed coordinates, drag to cut, keyboard rotation."`
	Paint      paintCmd  `cmd:"" help:"Click-driven paint demo."`
	Export     exportCmd `cmd:"" help:"Render a saved board to PDF or PNG files."`
	Join       joinCmd   `cmd:"" help:"Join a board shared by another machine."`
	ShowConfig configCmd `cmd:"" name:"config" help:"Print the effective configuration."`
}

// env is what every command runs with.
type env struct {
	cfg   *config.Config
	log   *zap.Logger
	share bool
}

func (e *env) window(title string) *ui.Window {
	a := app.NewWithID(appID)
	return ui.NewWindow(a, board.New(e.cfg, e.log), e.log, title)
}

func loadFile(b *board.Board, path string) error {
	if path == "" {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return b.Load(f)
}

// host shares w's board until ctx is done.
func (e *env) host(ctx context.Context, w *ui.Window) {
	b := w.Board()
	port := e.cfg.Share.Port
	hub := net.NewHub(e.log)

	hub.Snapshot = func() net.Message {
		var m net.Message
		fyne.DoAndWait(func() { m = net.SnapshotMessage(b.Shapes()) })
		return m
	}
	hub.OnMessage = func(m net.Message) {
		fyne.Do(func() {
			if err := net.Apply(b, m); err != nil {
				e.log.Warn("dropping peer message", zap.Error(err))
			}
		})
	}
	broadcast := func(m net.Message) {
		if err := hub.Broadcast(m); err != nil {
			e.log.Warn("broadcast failed", zap.Error(err))
		}
	}
	b.OnAdd = func(s *shape.Shape) { broadcast(net.AddMessage(s)) }
	b.OnCut = func(r shape.Rect) { broadcast(net.CutMessage(r)) }
	b.OnUpdate = func(shapes []*shape.Shape) { broadcast(net.UpdateMessage(shapes)) }
	b.OnReplace = func(shapes []*shape.Shape) { broadcast(net.SnapshotMessage(shapes)) }

	go func() {
		if err := net.Serve(ctx, fmt.Sprintf(":%d", port), hub); err != nil {
			e.log.Error("sharing stopped", zap.Error(err))
			w.PostStatus("Sharing stopped: " + err.Error())
		}
	}()

	if e.cfg.Share.Advertise {
		srv, err := net.Advertise(port)
		if err != nil {
			e.log.Warn("mdns advertise failed", zap.Error(err))
		} else {
			go func() {
				<-ctx.Done()
				_ = srv.Shutdown()
			}()
		}
	}

	link := net.ShareLink(net.OutgoingIP(), port)
	e.log.Info("sharing board", zap.String("link", link))
	w.SetShareLink(link)
}

func (e *env) runWindow(w *ui.Window) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if e.share {
		e.host(ctx, w)
	}
	w.ShowAndRun()
}

type menuCmd struct {
	File string `arg:"" optional:"" type:"existingfile" help:"Board file to open."`
}

func (c *menuCmd) Run(e *env) error {
	w := e.window("ShapeBoard")
	if err := loadFile(w.Board(), c.File); err != nil {
		return err
	}
	w.MenuDemo()
	e.runWindow(w)
	return nil
}

type paintCmd struct {
	File string `arg:"" optional:"" type:"existingfile" help:"Board file to open."`
}

func (c *paintCmd) Run(e *env) error {
	w := e.window("ShapeBoard Paint")
	if err := loadFile(w.Board(), c.File); err != nil {
		return err
	}
	w.PaintDemo()
	e.runWindow(w)
	return nil
}

type exportCmd struct {
	Input   string   `arg:"" type:"existingfile" help:"Board file to render."`
	Outputs []string `arg:"" type:"path" help:"Files to write; .pdf or .png picks the format."`
}

func (c *exportCmd) Run(e *env) error {
	b := board.New(e.cfg, e.log)
	defer b.Close()
	if err := loadFile(b, c.Input); err != nil {
		return err
	}
	vp := render.Viewport{Width: e.cfg.Window.Width, Height: e.cfg.Window.Height}
	for _, out := range c.Outputs {
		if err := export.ToFile(out, b.Shapes(), b.Renderer(), vp, b.Background()); err != nil {
			return err
		}
		e.log.Info("exported", zap.String("file", out), zap.Int("shapes", len(b.Shapes())))
	}
	return nil
}

type joinCmd struct {
	Link  string `arg:"" optional:"" help:"Share link (shapeboard://host:port). Browses the local network when omitted."`
	Paint bool   `help:"Join with the paint demo instead of the menu demo."`
}

func browseFirst(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	var first string
	err := net.Browse(ctx, func(addr string) {
		if first == "" {
			first = addr
		}
	})
	if err != nil {
		return "", err
	}
	if first == "" {
		return "", errors.New("no shared board found on the local network")
	}
	return first, nil
}

func (c *joinCmd) Run(e *env) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	link := c.Link
	if link == "" {
		found, err := browseFirst(ctx)
		if err != nil {
			return err
		}
		link = found
	}
	url, err := net.ParseLink(link)
	if err != nil {
		return err
	}
	dialCtx, dialCancel := context.WithTimeout(ctx, 5*time.Second)
	client, err := net.Dial(dialCtx, url, e.log)
	dialCancel()
	if err != nil {
		return err
	}
	defer client.Close()

	w := e.window("ShapeBoard: " + link)
	if c.Paint {
		w.PaintDemo()
	} else {
		w.MenuDemo()
	}
	b := w.Board()
	send := func(m net.Message) {
		if err := client.Send(m); err != nil {
			e.log.Warn("send failed", zap.Error(err))
			w.SetStatus("Send failed: " + err.Error())
		}
	}
	b.OnAdd = func(s *shape.Shape) { send(net.AddMessage(s)) }
	b.OnCut = func(r shape.Rect) { send(net.CutMessage(r)) }
	b.OnUpdate = func(shapes []*shape.Shape) { send(net.UpdateMessage(shapes)) }

	go func() {
		err := client.Run(ctx, func(m net.Message) {
			fyne.Do(func() {
				if err := net.Apply(b, m); err != nil {
					e.log.Warn("dropping host message", zap.Error(err))
				}
			})
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			e.log.Warn("disconnected", zap.Error(err))
		}
		w.PostStatus("Disconnected from host")
	}()

	w.SetStatus("Connected to " + link)
	w.ShowAndRun()
	return nil
}

type configCmd struct{}

func (c *configCmd) Run(e *env) error {
	return e.cfg.Write(os.Stdout)
}

func main() {
	args := os.Args[1:]
	// a bare share link, as handed out by a host, joins its board
	if len(args) == 1 && strings.HasPrefix(args[0], net.LinkScheme) {
		args = []string{"join", args[0]}
	}

	var cli CLI
	parser := kong.Must(&cli,
		kong.Name("shapeboard"),
		kong.Description("A small 2D drawing board."),
		kong.UsageOnError(),
	)
	kctx, err := parser.Parse(args)
	parser.FatalIfErrorf(err)

	cfg, err := config.Load(cli.Config)
	parser.FatalIfErrorf(err)
	log, err := logging.New(cfg.Log)
	parser.FatalIfErrorf(err)

	err = kctx.Run(&env{cfg: cfg, log: log, share: cli.Share})
	if err != nil {
		log.Error("command failed", zap.String("command", kctx.Command()), zap.Error(err))
	}
	_ = log.Sync()
	kctx.FatalIfErrorf(err)
}
