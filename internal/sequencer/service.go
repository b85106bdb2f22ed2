// Package sequencer runs the polling pipeline: fetch a traffic snapshot,
// filter it down to descending arrivals near the field, classify each one
// against the runway table, and keep the latest results for the API.
package sequencer

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/yegors/rwy-assign/internal/adsb"
	"github.com/yegors/rwy-assign/internal/runways"
	"github.com/yegors/rwy-assign/internal/scoring"
	"github.com/yegors/rwy-assign/internal/storage/sqlite"
	"github.com/yegors/rwy-assign/pkg/logger"
)

// Service periodically fetches and classifies arrival traffic
type Service struct {
	client  *adsb.Client
	table   *runways.Table
	params  scoring.Params
	storage *sqlite.AssignmentStorage

	fetchInterval      time.Duration
	minSpeedMPS        float64
	maxThresholdDistNM float64

	logger *logger.Logger
	stopCh chan struct{}
	wg     sync.WaitGroup

	mu          sync.RWMutex
	latest      []ClassifiedAircraft
	lastFetch   time.Time
	lastFetchOK bool
}

// NewService creates a new sequencer service
func NewService(
	client *adsb.Client,
	table *runways.Table,
	params scoring.Params,
	storage *sqlite.AssignmentStorage,
	fetchInterval time.Duration,
	minSpeedMPS float64,
	maxThresholdDistNM float64,
	log *logger.Logger,
) *Service {
	return &Service{
		client:             client,
		table:              table,
		params:             params,
		storage:            storage,
		fetchInterval:      fetchInterval,
		minSpeedMPS:        minSpeedMPS,
		maxThresholdDistNM: maxThresholdDistNM,
		logger:             log.Named("sequencer"),
		stopCh:             make(chan struct{}),
	}
}

// Start runs an initial cycle and begins background polling
func (s *Service) Start(ctx context.Context) error {
	s.logger.Info("Starting sequencer service",
		logger.String("airport", s.table.Airport),
		logger.Duration("fetch_interval", s.fetchInterval),
	)

	if err := s.fetchAndClassify(ctx); err != nil {
		s.logger.Error("Initial snapshot failed", logger.Error(err))
	}

	s.wg.Add(1)
	go s.fetchLoop(ctx)

	return nil
}

// Stop stops the background polling and waits for it to finish
func (s *Service) Stop() {
	s.logger.Info("Stopping sequencer service")
	close(s.stopCh)
	s.wg.Wait()
	s.logger.Info("Sequencer service stopped")
}

func (s *Service) fetchLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.fetchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.fetchAndClassify(ctx); err != nil {
				s.logger.Error("Failed to fetch and classify snapshot", logger.Error(err))
			}
		case <-s.stopCh:
			return
		case <-ctx.Done():
			return
		}
	}
}

// fetchAndClassify runs one full pipeline cycle
func (s *Service) fetchAndClassify(ctx context.Context) error {
	snapshot, err := s.client.FetchSnapshot(ctx)
	if err != nil {
		s.setStatus(time.Now().UTC(), false)
		return err
	}

	states := adsb.FilterAirborne(snapshot.States, s.minSpeedMPS)
	states = adsb.FilterDescending(states)
	states = adsb.FilterNearThresholds(states, s.table, s.maxThresholdDistNM)

	// Classification needs a ground track; rows without one are useless.
	withTrack := states[:0]
	for _, sv := range states {
		if sv.HasTrack() {
			withTrack = append(withTrack, sv)
		}
	}
	states = withTrack

	// Closest to a threshold first, matching the arrival sequence.
	sort.SliceStable(states, func(i, j int) bool {
		return states[i].ThresholdDistNM < states[j].ThresholdDistNM
	})

	now := time.Now().UTC()
	classified := make([]ClassifiedAircraft, 0, len(states))
	records := make([]*sqlite.AssignmentRecord, 0, len(states))

	for _, sv := range states {
		ac := sv.ToAircraftState()
		result := scoring.AssignAircraft(ac, s.table.Directions, s.params)

		confidence := ConfidenceUnknown
		if result.BestID != "" {
			winner := result.Debug[result.BestID]
			confidence = scoring.Confidence(winner.DTrack, winner.XNM)
		}

		classified = append(classified, ClassifiedAircraft{
			Icao24:          sv.Icao24,
			State:           ac,
			Assignment:      result,
			Confidence:      confidence,
			ThresholdDistNM: sv.ThresholdDistNM,
			ClassifiedAt:    now,
		})
		records = append(records, buildRecord(sv.Icao24, ac, result, confidence, now))

		s.logClassification(sv.Icao24, ac, result, confidence)
	}

	if s.storage != nil {
		if err := s.storage.StoreBatch(records); err != nil {
			s.logger.Error("Failed to persist assignments", logger.Error(err))
		}
	}

	s.mu.Lock()
	s.latest = classified
	s.mu.Unlock()
	s.setStatus(now, true)

	s.logger.Info("Classified arrival traffic",
		logger.Int("snapshot_states", len(snapshot.States)),
		logger.Int("classified", len(classified)),
	)

	return nil
}

func buildRecord(icao24 string, ac scoring.AircraftState, result scoring.Assignment, confidence string, now time.Time) *sqlite.AssignmentRecord {
	record := &sqlite.AssignmentRecord{
		Callsign:   ac.Callsign,
		Icao24:     icao24,
		Score:      result.BestScore,
		Confidence: confidence,
		Lat:        ac.Lat,
		Lon:        ac.Lon,
		TrackDeg:   ac.TrackDeg,
		CreatedAt:  now,
	}
	if result.BestID != "" {
		winner := result.Debug[result.BestID]
		id := result.BestID
		dtrack, xNM, dNM := winner.DTrack, winner.XNM, winner.DNM
		record.RunwayID = &id
		record.DTrackDeg = &dtrack
		record.XTrackNM = &xNM
		record.DistNM = &dNM
	}
	return record
}

func (s *Service) logClassification(icao24 string, ac scoring.AircraftState, result scoring.Assignment, confidence string) {
	fields := []logger.Field{
		logger.String("callsign", ac.Callsign),
		logger.String("icao24", icao24),
		logger.Float64("track_deg", ac.TrackDeg),
		logger.Float64("score", result.BestScore),
		logger.String("confidence", confidence),
	}
	if result.BestID != "" {
		winner := result.Debug[result.BestID]
		fields = append(fields,
			logger.String("runway", result.BestID),
			logger.Float64("dtrack_deg", winner.DTrack),
			logger.Float64("xtrack_nm", winner.XNM),
			logger.Float64("dist_nm", winner.DNM),
		)
		s.logger.Info("Runway assigned", fields...)
	} else {
		s.logger.Info("No runway passed gates", fields...)
	}
}

// Latest returns the classifications from the most recent cycle
func (s *Service) Latest() []ClassifiedAircraft {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]ClassifiedAircraft, len(s.latest))
	copy(out, s.latest)
	return out
}

// Status returns the time and success of the last fetch
func (s *Service) Status() (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastFetch, s.lastFetchOK
}

func (s *Service) setStatus(t time.Time, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastFetch = t
	s.lastFetchOK = ok
}

// Table returns the runway table the service classifies against
func (s *Service) Table() *runways.Table {
	return s.table
}

// Params returns the scoring parameters in use
func (s *Service) Params() scoring.Params {
	return s.params
}
