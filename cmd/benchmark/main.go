package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/depcell/depcell/cell"
	"github.com/depcell/depcell/reactive"
	"github.com/dustin/go-humanize"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"
)

const profileKey = "profile"

func main() {
	cmd := &cli.Command{
		Name:  "benchmark",
		Usage: "Benchmark the depcell reactive core",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  profileKey,
				Usage: "Write a CPU profile to default.pgo",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "propagate",
				Usage:  "Measure change propagation latency over ref/computed grids",
				Action: runPropagate,
			},
			{
				Name:   "churn",
				Usage:  "Measure registry and key-set resolution throughput",
				Action: runChurn,
			},
		},
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func startProfile(cmd *cli.Command) func() {
	if !cmd.Bool(profileKey) {
		return func() {}
	}
	f, err := os.Create("default.pgo")
	if err != nil {
		log.Fatal(err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		log.Fatal(err)
	}
	return func() {
		pprof.StopCPUProfile()
		f.Close()
	}
}

var (
	ww    = []int{1, 10, 100, 1_000}
	hh    = []int{1, 10, 100}
	iters = 100
)

func runPropagate(ctx context.Context, cmd *cli.Command) error {
	defer startProfile(cmd)()

	log.Print("warming up")

	tbl := table.NewWriter()
	tbl.SetTitle("depcell propagate")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})

	for _, w := range ww {
		for _, h := range hh {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})

			rt := cell.New(func(sub cell.Subscriber, err error) {
				log.Panic(err)
			})
			src := reactive.NewRef(rt, 1)
			for i := 0; i < w; i++ {
				var last reactive.Readable[int] = src
				for j := 0; j < h; j++ {
					prev := last
					last = cell.NewComputed(rt, func(oldValue int) int {
						return prev.Value() + 1
					})
				}

				rt.Effect(func() error {
					last.Value()
					return nil
				})
			}

			for i := 0; i < iters; i++ {
				start := time.Now()
				src.SetValue(src.Value() + 1)
				tach.AddTime(time.Since(start))
			}

			calc := tach.Calc()
			tbl.AppendRows([]table.Row{
				{
					fmt.Sprintf("propagate: %d * %d", w, h),
					calc.Time.Avg,
					calc.Time.Min,
					calc.Time.P75,
					calc.Time.P99,
					calc.Time.Max,
				},
			})
		}
	}

	tbl.Render()
	return nil
}

type churnConfig struct {
	name       string
	list       bool
	keys       int
	watchers   int
	iterations int64
}

func runChurn(ctx context.Context, cmd *cli.Command) error {
	defer startProfile(cmd)()

	cfgs := []churnConfig{
		{name: "small map", keys: 10, watchers: 10, iterations: 200_000},
		{name: "wide map", keys: 1_000, watchers: 100, iterations: 50_000},
		{name: "small list", list: true, keys: 10, watchers: 10, iterations: 200_000},
		{name: "wide list", list: true, keys: 1_000, watchers: 100, iterations: 50_000},
	}

	tw := tablewriter.NewWriter(os.Stdout)
	tw.SetHeader([]string{"test", "keys", "watchers", "ops", "time", "ops/sec"})

	for _, cfg := range cfgs {
		log.Printf("Running '%s' config", cfg.name)

		var duration time.Duration
		if cfg.list {
			duration = churnList(cfg)
		} else {
			duration = churnMap(cfg)
		}

		rate := float64(cfg.iterations) / duration.Seconds()
		tw.Append([]string{
			cfg.name,
			humanize.Comma(int64(cfg.keys)),
			humanize.Comma(int64(cfg.watchers)),
			humanize.Comma(cfg.iterations),
			fmt.Sprint(duration),
			humanize.Comma(int64(rate)),
		})
	}

	tw.Render()
	return nil
}

func churnMap(cfg churnConfig) time.Duration {
	rt := cell.New(func(sub cell.Subscriber, err error) {
		log.Panic(err)
	})
	m := reactive.NewMap[int, int](rt)
	for k := 0; k < cfg.keys; k++ {
		m.Set(k, k)
	}
	for i := 0; i < cfg.watchers; i++ {
		k := i % cfg.keys
		rt.Effect(func() error {
			m.Get(k)
			m.Len()
			return nil
		})
	}

	start := time.Now()
	for i := int64(0); i < cfg.iterations; i++ {
		k := int(i) % cfg.keys
		m.Set(k, int(i))
		if i%16 == 0 {
			m.Delete(k)
		}
	}
	return time.Since(start)
}

func churnList(cfg churnConfig) time.Duration {
	rt := cell.New(func(sub cell.Subscriber, err error) {
		log.Panic(err)
	})
	l := reactive.NewList[int](rt)
	for k := 0; k < cfg.keys; k++ {
		l.Append(k)
	}
	for i := 0; i < cfg.watchers; i++ {
		k := i % cfg.keys
		rt.Effect(func() error {
			l.At(k)
			l.Len()
			return nil
		})
	}

	start := time.Now()
	for i := int64(0); i < cfg.iterations; i++ {
		k := int(i) % cfg.keys
		l.Set(k, int(i))
		if i%64 == 0 {
			l.SetLen(cfg.keys / 2)
			l.SetLen(cfg.keys)
		}
	}
	return time.Since(start)
}
