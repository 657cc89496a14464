package updater

import (
	"errors"
	"fmt"
	"log"

	"LiquiditySentinel/internal/collector"
	"LiquiditySentinel/internal/config"
	"LiquiditySentinel/internal/model"
	"LiquiditySentinel/internal/recorder"
	"LiquiditySentinel/internal/series"
	"LiquiditySentinel/internal/store"
)

// Updater computes indicator values from injected fetchers and applies them
// to the loaded store records. All I/O lives in the fetchers and the store;
// the updater itself only sequences jobs.
type Updater struct {
	Cfg       *config.Config
	Macro     collector.MacroFetcher
	Market    collector.MarketFetcher
	Dominance collector.DominanceFetcher
	Flows     collector.FlowFetcher
	Sentiment collector.SentimentFetcher
	Prices    collector.PriceFetcher
	Recorder  recorder.Recorder
}

// Job is one registered indicator update: the store keyword locating its
// record and the compute that fills it in.
type Job struct {
	Keyword string
	Run     func(rec *model.Indicator) error
}

// RunOnce loads the store, runs every registered indicator update in order,
// and writes the store back as one snapshot.
func (u *Updater) RunOnce() {
	path := u.Cfg.Store.DataFile
	records := store.Load(path)
	if len(records) == 0 {
		log.Printf("[WARN] %s is empty or missing; nothing to update", path)
		return
	}

	updated, skipped := u.RunAll(records)

	if err := store.Save(path, records); err != nil {
		log.Printf("[ERROR] save %s: %v", path, err)
		return
	}
	log.Printf("[INFO] saved %s (%d updated, %d skipped)", path, updated, skipped)

	if err := u.Recorder.RecordRun(&recorder.RunEvent{Updated: updated, Skipped: skipped}); err != nil {
		log.Printf("[ERROR] record run: %v", err)
	}
}

// RunAll executes every registered job against the given records. Jobs run
// in a fixed order; a failed, indeterminate, or panicking job leaves its
// record untouched and never stops the remaining jobs.
func (u *Updater) RunAll(records []model.Indicator) (updated, skipped int) {
	for _, job := range u.Jobs() {
		rec := store.Find(records, job.Keyword)
		if rec == nil {
			log.Printf("[WARN] indicator %q not found; skip", job.Keyword)
			skipped++
			continue
		}
		if err := u.runJob(job, rec); err != nil {
			if errors.Is(err, series.ErrIndeterminate) {
				log.Printf("[WARN] %s: %v; keeping previous value", job.Keyword, err)
			} else {
				log.Printf("[ERROR] %s: %v; keeping previous value", job.Keyword, err)
			}
			skipped++
			continue
		}
		updated++

		if err := u.Recorder.RecordIndicator(&recorder.IndicatorEvent{
			Name:   rec.Name,
			Value:  rec.Current,
			Source: rec.Meta.Source,
			Detail: rec.Detail,
		}); err != nil {
			log.Printf("[ERROR] record %s: %v", rec.Name, err)
		}
	}
	return updated, skipped
}

func (u *Updater) runJob(job Job, rec *model.Indicator) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return job.Run(rec)
}
