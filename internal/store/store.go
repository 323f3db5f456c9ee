// Package store persists throw episodes: one directory per episode
// with JSON metadata and a CSV trajectory.
package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Frame is one recorded integration step.
type Frame struct {
	T  float64
	X  float64
	Y  float64
	VX float64
	VY float64
}

// EpisodeMetadata summarizes one Held→Thrown→Idle cycle.
type EpisodeMetadata struct {
	ID        string    `json:"id"`
	StartedAt time.Time `json:"started_at"`
	Duration  float64   `json:"duration_s"`
	Ticks     int       `json:"ticks"`
	ReleaseVX float64   `json:"release_vx"`
	ReleaseVY float64   `json:"release_vy"`
	RestX     float64   `json:"rest_x"`
	RestY     float64   `json:"rest_y"`
	Bounces   int       `json:"bounces"`
}

// Save writes the episode and returns its id.
func (s *Store) Save(meta EpisodeMetadata, frames []Frame) (string, error) {
	if meta.ID == "" {
		meta.ID = uuid.NewString()[:8]
	}
	epDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(epDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(epDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(epDir, "trajectory.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"t", "x", "y", "vx", "vy"}); err != nil {
		return "", err
	}
	for _, f := range frames {
		row := []string{
			strconv.FormatFloat(f.T, 'f', 6, 64),
			strconv.FormatFloat(f.X, 'f', 4, 64),
			strconv.FormatFloat(f.Y, 'f', 4, 64),
			strconv.FormatFloat(f.VX, 'f', 4, 64),
			strconv.FormatFloat(f.VY, 'f', 4, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	return meta.ID, nil
}

// Load reads the metadata of one episode.
func (s *Store) Load(id string) (*EpisodeMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, "metadata.json"))
	if err != nil {
		return nil, fmt.Errorf("store: episode %s: %w", id, err)
	}
	var meta EpisodeMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadTrajectory reads the recorded frames of one episode.
func (s *Store) LoadTrajectory(id string) ([]Frame, error) {
	f, err := os.Open(filepath.Join(s.baseDir, id, "trajectory.csv"))
	if err != nil {
		return nil, fmt.Errorf("store: episode %s: %w", id, err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("store: episode %s: empty trajectory", id)
	}

	frames := make([]Frame, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) != 5 {
			return nil, fmt.Errorf("store: episode %s: malformed row", id)
		}
		vals := make([]float64, 5)
		for i, cell := range row {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("store: episode %s: %w", id, err)
			}
			vals[i] = v
		}
		frames = append(frames, Frame{T: vals[0], X: vals[1], Y: vals[2], VX: vals[3], VY: vals[4]})
	}
	return frames, nil
}

// List returns all stored episodes, oldest first.
func (s *Store) List() ([]EpisodeMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var metas []EpisodeMetadata
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		meta, err := s.Load(e.Name())
		if err != nil {
			continue
		}
		metas = append(metas, *meta)
	}
	sort.Slice(metas, func(i, j int) bool {
		return metas[i].StartedAt.Before(metas[j].StartedAt)
	})
	return metas, nil
}
