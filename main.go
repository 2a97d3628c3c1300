package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/eclipse/paho.mqtt.golang"
	"github.com/matt-g-everett/boxtx/annotate"
	"github.com/matt-g-everett/boxtx/api"
	"github.com/matt-g-everett/boxtx/config"
	"github.com/matt-g-everett/boxtx/db"
	"github.com/matt-g-everett/boxtx/export"
	"github.com/matt-g-everett/boxtx/keyfile"
	"github.com/matt-g-everett/boxtx/stream"
	"github.com/matt-g-everett/boxtx/util"
	"github.com/matt-g-everett/boxtx/video"
)

type app struct {
	Config   *config.Config
	Source   *video.DirSource
	Timeline *annotate.Timeline
	Scale    float64
	Api      *api.Api
}

func newApp() *app {
	a := new(app)
	a.Api = api.NewApi()
	return a
}

func (a *app) readConfig(configPath string) {
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Config: %v", err)
	}
	a.Config = cfg

	if cfg.Video.Frames != "" {
		a.Source, err = video.OpenDir(cfg.Video.Frames)
		if err != nil {
			log.Fatalf("Frames: %v", err)
		}
	}
}

func (a *app) originalWidth() (int, error) {
	if a.Source != nil {
		return a.Source.Width()
	}
	return a.Config.Video.Width, nil
}

// plan writes the sampled frames at the working resolution for annotation.
func (a *app) plan() error {
	if a.Source == nil {
		return errors.New("video.frames is required to export the sampling plan")
	}
	sink, err := video.NewDirSink(filepath.Join(a.Config.Output.Dir, "plan"))
	if err != nil {
		return err
	}
	frames, scale, err := video.ExportPlan(a.Source, a.Config.Annotation.FrameSkip, a.Config.Annotation.WindowWidth, sink)
	if err != nil {
		return err
	}
	log.Printf("Exported %d frames for annotation at scale %.4f", len(frames), scale)
	return nil
}

func (a *app) interpolate() error {
	cfg := a.Config
	kf, err := keyfile.Load(cfg.Annotation.Keyframes)
	if err != nil {
		return err
	}
	store, err := kf.Store(cfg.Annotation.Elements, cfg.Annotation.FrameSkip)
	if err != nil {
		return err
	}

	width, err := a.originalWidth()
	if err != nil {
		return err
	}
	a.Scale, err = video.WorkingScale(width, cfg.Annotation.WindowWidth)
	if err != nil {
		return err
	}

	policy := cfg.SentinelPolicy()
	keyframes := store.All()
	for i := range keyframes {
		keyframes[i] = keyframes[i].Rescale(a.Scale, policy)
	}

	in := annotate.NewInterpolator(cfg.Annotation.Elements)
	in.Policy = policy
	if in.Easing, err = util.Easing(cfg.Annotation.Easing); err != nil {
		return err
	}
	a.Timeline, err = in.Expand(keyframes)
	if err != nil {
		return err
	}
	log.Printf("Interpolated %d keyframes into frames %d-%d (scale %.4f, sentinel %s)",
		len(keyframes), a.Timeline.Start, a.Timeline.End(), a.Scale, policy)

	if cfg.DB.Path != "" {
		sessions, err := db.Open(cfg.DB.Path)
		if err != nil {
			return err
		}
		defer sessions.Close()
		id, err := sessions.SaveSession(keyframes, a.Timeline, a.Scale, policy)
		if err != nil {
			return err
		}
		log.Printf("Saved session %s", id)
	}
	return nil
}

func (a *app) writeOutputs() error {
	cfg := a.Config
	if err := os.MkdirAll(cfg.Output.Dir, 0755); err != nil {
		return err
	}

	if cfg.Output.CSV {
		f, err := os.Create(filepath.Join(cfg.Output.Dir, "annotations.csv"))
		if err != nil {
			return err
		}
		if err := export.WriteCSV(f, a.Timeline); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}

	if cfg.Output.Plot {
		if err := export.Plot(a.Timeline, filepath.Join(cfg.Output.Dir, "plots")); err != nil {
			return err
		}
	}

	if cfg.Output.Chart {
		f, err := os.Create(filepath.Join(cfg.Output.Dir, "chart.html"))
		if err != nil {
			return err
		}
		if err := export.Chart(f, a.Timeline); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}

	if cfg.Output.Frames && a.Source != nil {
		a.Source.Rewind()
		sink, err := video.NewDirSink(filepath.Join(cfg.Output.Dir, "frames"))
		if err != nil {
			return err
		}
		n, err := video.Render(a.Source, a.Timeline, sink)
		if errors.Is(err, video.ErrShortSource) {
			log.Printf("Rendered %d of %d frames: %v", n, a.Timeline.Len(), err)
		} else if err != nil {
			return err
		} else {
			log.Printf("Rendered %d frames", n)
		}
	}
	return nil
}

func (a *app) stream(ctx context.Context) error {
	cfg := a.Config
	options := mqtt.NewClientOptions().
		AddBroker(cfg.Mqtt.URL).
		SetClientID("boxtx").
		SetUsername(cfg.Mqtt.Username).
		SetPassword(cfg.Mqtt.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second)
	client := mqtt.NewClient(options)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	defer client.Disconnect(250)
	log.Println("Connected")

	s := stream.NewStreamer(client, cfg.Mqtt.Topic, cfg.Mqtt.QoS, cfg.Video.FPS)
	return s.Play(ctx, a.Timeline)
}

func main() {
	mqtt.ERROR = log.New(os.Stdout, "", 0)

	// Parse command line parameters
	configPath := flag.String("config", "config.yaml", "YAML config file.")
	planOnly := flag.Bool("plan", false, "Export the sampled frames for annotation and exit.")
	flag.Parse()

	a := newApp()
	a.readConfig(*configPath)
	log.Printf("Config: %+v", a.Config.Annotation)

	if *planOnly {
		if err := a.plan(); err != nil {
			log.Fatalf("Plan: %v", err)
		}
		return
	}

	if err := a.interpolate(); err != nil {
		log.Fatalf("Interpolate: %v", err)
	}
	if err := a.writeOutputs(); err != nil {
		log.Fatalf("Output: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if a.Config.Mqtt.URL != "" {
		if err := a.stream(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("Stream: %v", err)
		}
	}

	if a.Config.HTTP.Addr != "" {
		a.Api.SetTimeline(a.Timeline)
		if err := a.Api.Serve(a.Config.HTTP.Addr); err != nil {
			log.Fatalf("Serve: %v", err)
		}
	}
}
