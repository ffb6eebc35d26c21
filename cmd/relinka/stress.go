package main

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/relinka"
)

var stressLevels = []relinka.Level{
	relinka.LevelVerbose,
	relinka.LevelInfo,
	relinka.LevelSuccess,
	relinka.LevelWarn,
	relinka.LevelError,
}

// stressOptions tunes the generated load
type stressOptions struct {
	workers      int
	bursts       int
	logsPerBurst int
	maxMsgSize   int
	repeatEvery  int
}

func generateRandomMessage(rng *rand.Rand, size int) string {
	const chars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 "
	var sb strings.Builder
	sb.Grow(size)
	for i := 0; i < size; i++ {
		sb.WriteByte(chars[rng.Intn(len(chars))])
	}
	return sb.String()
}

// logBurst simulates a burst of logging activity. Every repeatEvery-th
// record is a fixed line so the throttle gets exercised.
func logBurst(logger *relinka.Logger, rng *rand.Rand, so *stressOptions, burstID int) {
	for i := 0; i < so.logsPerBurst; i++ {
		if so.repeatEvery > 0 && i%so.repeatEvery == 0 {
			logger.Warn("repeated stress line")
			continue
		}
		level := stressLevels[rng.Intn(len(stressLevels))]
		msg := generateRandomMessage(rng, rng.Intn(so.maxMsgSize)+10)
		logger.Emit(level, msg, map[string]any{"bst": burstID, "seq": i, "rnd": rng.Int63()})
	}
}

func newStressCmd(opts *cliOptions) *cobra.Command {
	so := &stressOptions{}

	cmd := &cobra.Command{
		Use:   "stress",
		Short: "Generate concurrent bursts of log records and report throughput",
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			ctx := cmd.Context()
			logger, err := opts.startLogger(ctx, true)
			if err != nil {
				return err
			}
			defer func() {
				if shutdownErr := shutdown(logger); err == nil {
					err = shutdownErr
				}
			}()

			out := cmd.ErrOrStderr()
			fmt.Fprintf(out, "Starting stress test: %d workers, %d bursts, %d logs/burst.\n",
				so.workers, so.bursts, so.logsPerBurst)

			burstChan := make(chan int, so.workers)
			var wg sync.WaitGroup
			var completed atomic.Int64

			for w := 0; w < so.workers; w++ {
				wg.Add(1)
				go func(seed int64) {
					defer wg.Done()
					rng := rand.New(rand.NewSource(seed))
					for burstID := range burstChan {
						logBurst(logger, rng, so, burstID)
						completed.Add(1)
					}
				}(time.Now().UnixNano() + int64(w))
			}

			startTime := time.Now()
		submit:
			for i := 1; i <= so.bursts; i++ {
				select {
				case burstChan <- i:
				case <-ctx.Done():
					break submit
				}
			}
			close(burstChan)
			wg.Wait()
			duration := time.Since(startTime)

			stats := logger.Stats()
			fmt.Fprintf(out, "Completed %d/%d bursts in %v\n", completed.Load(), so.bursts, duration.Round(time.Millisecond))
			if duration > 0 {
				fmt.Fprintf(out, "Approximate logs/sec: %.2f\n", float64(completed.Load()*int64(so.logsPerBurst))/duration.Seconds())
			}
			fmt.Fprintf(out, "Emitted %d, suppressed %d, filtered %d, flushes %d, write failures %d, files deleted %d\n",
				stats.RecordsEmitted, stats.RecordsSuppressed, stats.RecordsFiltered,
				stats.Flushes, stats.WriteFailures, stats.FilesDeleted)
			return nil
		},
	}

	cmd.Flags().IntVar(&so.workers, "workers", 50, "concurrent workers")
	cmd.Flags().IntVar(&so.bursts, "bursts", 100, "bursts to submit")
	cmd.Flags().IntVar(&so.logsPerBurst, "logs-per-burst", 500, "records per burst")
	cmd.Flags().IntVar(&so.maxMsgSize, "max-message-size", 200, "upper bound of random message length")
	cmd.Flags().IntVar(&so.repeatEvery, "repeat-every", 10, "emit a repeated line every N records (0 disables)")
	return cmd
}
