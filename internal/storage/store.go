package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-logr/logr"

	"github.com/san-kum/fixedstep/internal/config"
	"github.com/san-kum/fixedstep/internal/result"
	"github.com/san-kum/fixedstep/internal/sim"
)

const (
	metadataFile   = "metadata.json"
	trajectoryFile = "trajectory.csv"
	sceneFile      = "scene.yaml"
)

var bodyColumns = []string{"x", "y", "z", "vx", "vy", "vz"}

// Store keeps recorded runs under baseDir, one directory per run.
type Store struct {
	baseDir string
	log     logr.Logger
	now     func() time.Time
}

type Option func(*Store)

func WithLogger(l logr.Logger) Option {
	return func(s *Store) { s.log = l }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func New(baseDir string, opts ...Option) *Store {
	s := &Store{baseDir: baseDir, log: logr.Discard(), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Scene     string             `json:"scene"`
	Repr      string             `json:"repr"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Timestep  float64            `json:"timestep"`
	Frames    int                `json:"frames"`
	Duration  float64            `json:"duration"`
	Substeps  int                `json:"substeps"`
	Bodies    []string           `json:"bodies"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes the run's metadata, its trajectory and the scene it ran. The
// returned ID names the run directory.
func (s *Store) Save(res *sim.Result, cfg *config.Config) (string, error) {
	if res == nil || cfg == nil {
		return "", result.ErrInvalidArgs
	}
	if err := s.Init(); err != nil {
		return "", err
	}

	ts := s.now()
	runID, runDir, err := s.reserve(fmt.Sprintf("%s_%s_%d", res.Scene, res.Repr, ts.Unix()))
	if err != nil {
		return "", err
	}

	final := res.Final()
	meta := RunMetadata{
		ID:        runID,
		Scene:     res.Scene,
		Repr:      res.Repr,
		Timestamp: ts,
		Seed:      cfg.Seed,
		Timestep:  cfg.Timestep,
		Frames:    len(res.Frames),
		Duration:  final.Time,
		Substeps:  res.Substeps,
		Bodies:    bodyNames(res.Initial),
		Metrics:   res.Metrics,
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeTrajectory(filepath.Join(runDir, trajectoryFile), res); err != nil {
		return "", err
	}
	if err := config.Save(filepath.Join(runDir, sceneFile), cfg); err != nil {
		return "", err
	}

	s.log.V(1).Info("run saved", "id", runID, "frames", meta.Frames)
	return runID, nil
}

// reserve creates a fresh run directory, suffixing id when a run with the
// same name already exists.
func (s *Store) reserve(id string) (string, string, error) {
	candidate := id
	for i := 1; ; i++ {
		dir := filepath.Join(s.baseDir, candidate)
		err := os.Mkdir(dir, 0755)
		if err == nil {
			return candidate, dir, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", "", err
		}
		candidate = fmt.Sprintf("%s_%d", id, i)
	}
}

func bodyNames(f sim.Frame) []string {
	names := make([]string, len(f.Bodies))
	for i, b := range f.Bodies {
		names[i] = b.Name
	}
	return names
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeTrajectory(path string, res *sim.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := []string{"frame", "time", "dt", "substeps"}
	for _, name := range bodyNames(res.Initial) {
		for _, c := range bodyColumns {
			header = append(header, name+"."+c)
		}
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, fr := range append([]sim.Frame{res.Initial}, res.Frames...) {
		row := []string{
			strconv.Itoa(fr.Index),
			formatFloat(fr.Time),
			formatFloat(fr.Dt),
			strconv.Itoa(fr.Substeps),
		}
		for _, b := range fr.Bodies {
			for _, v := range append(b.Position[:], b.Velocity[:]...) {
				row = append(row, formatFloat(v))
			}
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// List returns every readable run, oldest first. Directories without valid
// metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			s.log.V(1).Info("skipping run", "dir", entry.Name(), "error", err.Error())
			continue
		}
		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, result.Wrap(result.DoesNotExist, "run "+runID, err)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadScene returns the scene a run was recorded from.
func (s *Store) LoadScene(runID string) (*config.Config, error) {
	return config.Load(filepath.Join(s.baseDir, runID, sceneFile))
}

// LoadTrajectory reads back the frames of a run, the initial state first.
// Masses and flags are not recorded and come back zero.
func (s *Store) LoadTrajectory(runID string) ([]sim.Frame, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, trajectoryFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, result.Wrap(result.DoesNotExist, "run "+runID, err)
		}
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []sim.Frame{}, nil
	}

	names, err := parseHeader(records[0])
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	frames := make([]sim.Frame, 0, len(records)-1)
	for line, record := range records[1:] {
		f, err := parseRow(record, names)
		if err != nil {
			return nil, fmt.Errorf("run %s: line %d: %w", runID, line+2, err)
		}
		frames = append(frames, f)
	}
	return frames, nil
}

func parseHeader(header []string) ([]string, error) {
	const fixed = 4
	cols := len(bodyColumns)
	if len(header) < fixed || (len(header)-fixed)%cols != 0 {
		return nil, fmt.Errorf("malformed trajectory header with %d columns", len(header))
	}
	names := make([]string, 0, (len(header)-fixed)/cols)
	for i := fixed; i < len(header); i += cols {
		name, _, _ := strings.Cut(header[i], ".")
		names = append(names, name)
	}
	return names, nil
}

func parseRow(record []string, names []string) (sim.Frame, error) {
	vals := make([]float64, len(record))
	for i, field := range record {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return sim.Frame{}, err
		}
		vals[i] = v
	}

	f := sim.Frame{
		Index:    int(vals[0]),
		Time:     vals[1],
		Dt:       vals[2],
		Substeps: int(vals[3]),
		Bodies:   make([]sim.BodyState, len(names)),
	}
	for i, name := range names {
		v := vals[4+i*len(bodyColumns):]
		f.Bodies[i] = sim.BodyState{
			Name:     name,
			Position: sim.Vec3{v[0], v[1], v[2]},
			Velocity: sim.Vec3{v[3], v[4], v[5]},
		}
	}
	return f, nil
}
