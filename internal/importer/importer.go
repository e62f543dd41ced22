package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/claude/ironclub/internal/models"
	"github.com/claude/ironclub/internal/stats"
	"github.com/claude/ironclub/internal/storage"
)

// Stats tracks import progress.
type Stats struct {
	FilesProcessed int
	FilesSkipped   int
	FilesErrored   int

	MembersInserted  int
	MembersSkipped   int
	WorkoutsInserted int
	SetsInserted     int
	RowsErrored      int
}

// Importer reads legacy CSV exports from a directory tree and inserts the
// data into the database. Files already imported (tracked by path, size and
// content hash in the state db) are skipped on subsequent runs.
type Importer struct {
	db     *storage.DB
	state  *StateDB
	log    *slog.Logger
	dryRun bool
	stats  Stats
}

// New creates a new Importer.
func New(db *storage.DB, state *StateDB, log *slog.Logger, dryRun bool) *Importer {
	return &Importer{db: db, state: state, log: log, dryRun: dryRun}
}

// Import processes all CSV exports under the given directory. Member files
// are imported before workout files so set rows can resolve their owner.
func (imp *Importer) Import(ctx context.Context, exportDir string) (*Stats, error) {
	started := time.Now()

	memberDir := filepath.Join(exportDir, "members")
	workoutDir := filepath.Join(exportDir, "workouts")

	// Phase 1: member rosters
	if _, err := os.Stat(memberDir); err == nil {
		if err := imp.importMemberDir(ctx, exportDir, memberDir); err != nil {
			imp.recordRun(ctx, exportDir, started, err)
			return &imp.stats, fmt.Errorf("importing members: %w", err)
		}
	}

	// Phase 2: workout set exports
	if _, err := os.Stat(workoutDir); err == nil {
		if err := imp.importWorkoutDir(ctx, exportDir, workoutDir); err != nil {
			imp.recordRun(ctx, exportDir, started, err)
			return &imp.stats, fmt.Errorf("importing workouts: %w", err)
		}
	}

	imp.recordRun(ctx, exportDir, started, nil)
	return &imp.stats, nil
}

// recordRun persists an audit row for this run. Best effort: a failed audit
// write is logged but never fails the import.
func (imp *Importer) recordRun(ctx context.Context, exportDir string, started time.Time, runErr error) {
	if imp.dryRun {
		return
	}
	finished := time.Now()
	run := storage.ImportRun{
		ID:           uuid.New(),
		SourceFile:   exportDir,
		RowsInserted: int64(imp.stats.MembersInserted + imp.stats.SetsInserted),
		RowsSkipped:  int64(imp.stats.MembersSkipped + imp.stats.RowsErrored),
		StartedAt:    started,
		FinishedAt:   &finished,
	}
	if runErr != nil {
		msg := runErr.Error()
		run.Error = &msg
	}
	if err := imp.db.InsertImportRun(ctx, run); err != nil {
		imp.log.Error("recording import run", "error", err)
	}
}

// skipImported reports whether the file was already imported, and hashes it
// for the state db. The returned mark function records it after success.
func (imp *Importer) skipImported(exportDir, path string) (skip bool, mark func() error, err error) {
	rel, err := filepath.Rel(exportDir, path)
	if err != nil {
		rel = path
	}

	info, err := os.Stat(path)
	if err != nil {
		return false, nil, err
	}
	hash, err := HashFile(path)
	if err != nil {
		return false, nil, err
	}

	done, err := imp.state.IsImported(rel, info.Size(), hash)
	if err != nil {
		return false, nil, err
	}
	if done {
		return true, nil, nil
	}
	return false, func() error { return imp.state.MarkImported(rel, info.Size(), hash) }, nil
}

// importMemberDir imports every members/*.csv roster file.
func (imp *Importer) importMemberDir(ctx context.Context, exportDir, dir string) error {
	files, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return err
	}

	for _, f := range files {
		skip, mark, err := imp.skipImported(exportDir, f)
		if err != nil {
			return err
		}
		if skip {
			imp.stats.FilesSkipped++
			continue
		}

		file, err := os.Open(f)
		if err != nil {
			imp.log.Warn("open failed", "file", f, "error", err)
			imp.stats.FilesErrored++
			continue
		}
		rows, err := parseMemberRows(file)
		file.Close()
		if err != nil {
			imp.log.Warn("parse failed", "file", f, "error", err)
			imp.stats.FilesErrored++
			continue
		}

		imp.stats.FilesProcessed++
		for _, row := range rows {
			if err := imp.insertMember(ctx, row); err != nil {
				return fmt.Errorf("inserting member %s from %s: %w", row.Email, filepath.Base(f), err)
			}
		}

		if !imp.dryRun {
			if err := mark(); err != nil {
				return fmt.Errorf("marking %s imported: %w", f, err)
			}
		}
	}

	return nil
}

func (imp *Importer) insertMember(ctx context.Context, row memberRow) error {
	existing, err := imp.db.GetMemberByEmail(ctx, row.Email)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return err
	}
	if existing != nil {
		imp.stats.MembersSkipped++
		return nil
	}

	if imp.dryRun {
		imp.stats.MembersInserted++
		return nil
	}

	// Imported accounts have no credentials until the member resets their
	// password; an empty hash never matches any login attempt.
	member := models.Member{
		ID:       uuid.New(),
		Email:    row.Email,
		Name:     row.Name,
		Role:     models.RoleMember,
		JoinedAt: row.JoinedAt,
		Active:   true,
	}
	if err := imp.db.InsertMember(ctx, member); err != nil {
		return err
	}
	imp.stats.MembersInserted++
	return nil
}

// importWorkoutDir imports every workouts/*.csv set export.
func (imp *Importer) importWorkoutDir(ctx context.Context, exportDir, dir string) error {
	files, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return err
	}

	for _, f := range files {
		skip, mark, err := imp.skipImported(exportDir, f)
		if err != nil {
			return err
		}
		if skip {
			imp.stats.FilesSkipped++
			continue
		}

		file, err := os.Open(f)
		if err != nil {
			imp.log.Warn("open failed", "file", f, "error", err)
			imp.stats.FilesErrored++
			continue
		}
		rows, errored, err := parseSetRows(file)
		file.Close()
		imp.stats.RowsErrored += errored
		if err != nil {
			imp.log.Warn("parse failed", "file", f, "error", err)
			imp.stats.FilesErrored++
			continue
		}

		imp.stats.FilesProcessed++
		if err := imp.insertWorkouts(ctx, rows); err != nil {
			return fmt.Errorf("importing sets from %s: %w", filepath.Base(f), err)
		}

		if !imp.dryRun {
			if err := mark(); err != nil {
				return fmt.Errorf("marking %s imported: %w", f, err)
			}
		}
	}

	return nil
}

// insertWorkouts groups set rows into one workout log per member and day,
// resolves exercises by name and computes PR flags against the history
// already in the database plus earlier imported sets.
func (imp *Importer) insertWorkouts(ctx context.Context, rows []setRow) error {
	type logKey struct {
		email string
		day   string
	}

	grouped := map[logKey][]setRow{}
	var order []logKey
	for _, row := range rows {
		key := logKey{email: row.Email, day: row.Date.Format("2006-01-02")}
		if _, seen := grouped[key]; !seen {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], row)
	}
	sort.Slice(order, func(i, j int) bool {
		if order[i].email != order[j].email {
			return order[i].email < order[j].email
		}
		return order[i].day < order[j].day
	})

	members := map[string]*models.Member{}
	exercises := map[string]*models.Exercise{}
	type histKey struct {
		member   uuid.UUID
		exercise uuid.UUID
	}
	histories := map[histKey][]models.ExerciseSet{}

	for _, key := range order {
		sets := grouped[key]
		sort.SliceStable(sets, func(i, j int) bool { return sets[i].SetNumber < sets[j].SetNumber })

		member, ok := members[key.email]
		if !ok {
			var err error
			member, err = imp.db.GetMemberByEmail(ctx, key.email)
			if errors.Is(err, storage.ErrNotFound) {
				imp.log.Warn("skipping sets for unknown member", "email", key.email, "sets", len(sets))
				imp.stats.RowsErrored += len(sets)
				members[key.email] = nil
				continue
			}
			if err != nil {
				return err
			}
			members[key.email] = member
		}
		if member == nil {
			imp.stats.RowsErrored += len(sets)
			continue
		}

		log := models.WorkoutLog{
			ID:     uuid.New(),
			UserID: member.ID,
			Date:   sets[0].Date,
		}

		for _, row := range sets {
			exercise, ok := exercises[row.Exercise]
			if !ok {
				var err error
				exercise, err = imp.db.FindExerciseByName(ctx, row.Exercise)
				if errors.Is(err, storage.ErrNotFound) {
					imp.log.Warn("skipping set for unknown exercise", "exercise", row.Exercise)
					exercises[row.Exercise] = nil
					imp.stats.RowsErrored++
					continue
				}
				if err != nil {
					return err
				}
				exercises[row.Exercise] = exercise
			}
			if exercise == nil {
				imp.stats.RowsErrored++
				continue
			}

			hk := histKey{member: member.ID, exercise: exercise.ID}
			history, ok := histories[hk]
			if !ok {
				var err error
				history, err = imp.db.QueryExerciseSets(ctx, member.ID, exercise.ID)
				if err != nil {
					return err
				}
				histories[hk] = history
			}

			set := models.ExerciseSet{
				ID:         uuid.New(),
				WorkoutID:  log.ID,
				ExerciseID: exercise.ID,
				SetNumber:  row.SetNumber,
				WeightKg:   row.WeightKg,
				Reps:       row.Reps,
				RIR:        row.RIR,
				Date:       row.Date,
			}
			if err := set.Validate(); err != nil {
				imp.log.Warn("skipping invalid set", "exercise", row.Exercise, "error", err)
				imp.stats.RowsErrored++
				continue
			}
			set.IsPR = stats.DetectPR(set, history)
			histories[hk] = append(history, set)
			log.Sets = append(log.Sets, set)
		}

		if len(log.Sets) == 0 {
			continue
		}

		imp.stats.WorkoutsInserted++
		imp.stats.SetsInserted += len(log.Sets)
		if imp.dryRun {
			continue
		}
		if err := imp.db.InsertWorkoutLog(ctx, log); err != nil {
			return fmt.Errorf("inserting workout for %s on %s: %w", key.email, key.day, err)
		}
	}

	return nil
}

// memberRow is one line of a members/*.csv roster:
// email,name,joined_at
type memberRow struct {
	Email    string
	Name     string
	JoinedAt time.Time
}

func parseMemberRows(r io.Reader) ([]memberRow, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	var rows []memberRow
	for i, rec := range records {
		if i == 0 && strings.EqualFold(rec[0], "email") {
			continue
		}
		if len(rec) < 3 {
			return nil, fmt.Errorf("row %d: expected 3 columns, got %d", i+1, len(rec))
		}
		joined, err := time.Parse("2006-01-02", rec[2])
		if err != nil {
			return nil, fmt.Errorf("row %d: bad joined_at %q: %w", i+1, rec[2], err)
		}
		rows = append(rows, memberRow{
			Email:    strings.ToLower(strings.TrimSpace(rec[0])),
			Name:     strings.TrimSpace(rec[1]),
			JoinedAt: joined,
		})
	}
	return rows, nil
}

// setRow is one line of a workouts/*.csv export:
// email,date,exercise,set_number,weight_kg,reps,rir
// rir may be empty.
type setRow struct {
	Email     string
	Date      time.Time
	Exercise  string
	SetNumber int
	WeightKg  float64
	Reps      int
	RIR       *int
}

// parseSetRows parses a workout export. Malformed rows are counted and
// skipped rather than failing the whole file.
func parseSetRows(r io.Reader) ([]setRow, int, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, 0, err
	}

	var rows []setRow
	var errored int
	for i, rec := range records {
		if i == 0 && strings.EqualFold(rec[0], "email") {
			continue
		}
		row, err := parseSetRecord(rec)
		if err != nil {
			errored++
			continue
		}
		rows = append(rows, row)
	}
	return rows, errored, nil
}

func parseSetRecord(rec []string) (setRow, error) {
	if len(rec) < 7 {
		return setRow{}, fmt.Errorf("expected 7 columns, got %d", len(rec))
	}

	date, err := time.Parse("2006-01-02", rec[1])
	if err != nil {
		return setRow{}, fmt.Errorf("bad date %q: %w", rec[1], err)
	}
	setNumber, err := strconv.Atoi(rec[3])
	if err != nil {
		return setRow{}, fmt.Errorf("bad set_number %q: %w", rec[3], err)
	}
	weight, err := strconv.ParseFloat(rec[4], 64)
	if err != nil {
		return setRow{}, fmt.Errorf("bad weight_kg %q: %w", rec[4], err)
	}
	reps, err := strconv.Atoi(rec[5])
	if err != nil {
		return setRow{}, fmt.Errorf("bad reps %q: %w", rec[5], err)
	}

	row := setRow{
		Email:     strings.ToLower(strings.TrimSpace(rec[0])),
		Date:      date,
		Exercise:  strings.TrimSpace(rec[2]),
		SetNumber: setNumber,
		WeightKg:  weight,
		Reps:      reps,
	}
	if v := strings.TrimSpace(rec[6]); v != "" {
		rir, err := strconv.Atoi(v)
		if err != nil {
			return setRow{}, fmt.Errorf("bad rir %q: %w", v, err)
		}
		row.RIR = &rir
	}
	return row, nil
}
