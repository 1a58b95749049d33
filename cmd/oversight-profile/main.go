/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Profiling:
// go build ./cmd/oversight-profile
// OVERSIGHT_LOG_LEVEL=warn ./oversight-profile
// go tool pprof -http=":8000" -nodefraction=0.001 ./oversight-profile mem.pprof

package main

import (
	"context"
	"flag"
	"log"
	"os"
	"runtime"

	"github.com/pkg/profile"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"golang.org/x/sync/errgroup"

	"dirpx.dev/oversight"
	"dirpx.dev/oversight/apis"
	"dirpx.dev/oversight/builder"
	"dirpx.dev/oversight/collector"
	"dirpx.dev/oversight/config"
	"dirpx.dev/oversight/entity"
	"dirpx.dev/oversight/identity"
	"dirpx.dev/oversight/logsink"
)

type unit struct {
	entity.Base
	X, Y int64
}

type stray struct {
	entity.Base
}

func main() {
	rounds := flag.Int("rounds", 20, "number of rounds, each with a fresh registry")
	entities := flag.Int("entities", 10000, "entities created per round")
	mode := flag.String("mode", "mem", "profile mode: mem or cpu")
	ratio := flag.Float64("trace-ratio", 0.01, "fraction of registry operations traced")
	sequential := flag.Bool("sequential-ids", false, "use sequential ids instead of random UUIDs")
	flag.Parse()

	if *sequential {
		identity.SetDefault(identity.Sequential("e"))
	}

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("oversight-profile: %v", err)
	}
	logsink.SetDefault(logsink.FromConfig(os.Stderr, cfg))

	tp := sdktrace.NewTracerProvider(sdktrace.WithSampler(sdktrace.TraceIDRatioBased(*ratio)))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	var p interface{ Stop() }
	switch *mode {
	case "cpu":
		p = profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	default:
		p = profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	}
	err = run(cfg, tp, *rounds, *entities)
	p.Stop()
	if err != nil {
		log.Fatalf("oversight-profile: %v", err)
	}
}

func run(cfg apis.Config, tp *sdktrace.TracerProvider, rounds, numEntities int) error {
	workers := runtime.GOMAXPROCS(0) * 4
	for range rounds {
		oversight.SetAll(&cfg, builder.Ext{TracerProvider: tp}, nil, builder.New())
		units := collector.New[*unit]().MustCreate()

		var g errgroup.Group
		for w := range workers {
			g.Go(func() error {
				for i := w; i < numEntities; i += workers {
					if i%100 == 0 {
						entity.Create(&stray{Base: entity.NewBase[stray]()})
						continue
					}
					entity.Create(&unit{Base: entity.NewBase[unit](), X: int64(i), Y: int64(-i)})
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		var sum int64
		for _, u := range units.Entities() {
			sum += u.X + u.Y
		}
		if sum != 0 {
			log.Printf("oversight-profile: checksum %d, want 0", sum)
		}
	}
	return nil
}
