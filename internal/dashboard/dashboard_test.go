package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"gudang-backend/internal/apperror"
	"gudang-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	rows     []MovementRow
	unit     string
	from, to time.Time
	err      error
}

func (r *fakeRepo) Movements(_ context.Context, unit string, from, to time.Time) ([]MovementRow, error) {
	r.unit, r.from, r.to = unit, from, to
	return r.rows, r.err
}

func (r *fakeRepo) Counts(context.Context) (*Counts, error) {
	if r.err != nil {
		return nil, r.err
	}
	return &Counts{JumlahBarang: 12, DiBawahMinimum: 2, PermintaanMenunggu: 3}, nil
}

func day(s string) time.Time {
	t, _ := time.ParseInLocation("2006-01-02", s, time.UTC)
	return t
}

// Rabu, 14 Oktober 2026.
func newService(repo *fakeRepo) *Service {
	svc := NewService(repo)
	svc.now = func() time.Time { return time.Date(2026, 10, 14, 15, 30, 0, 0, time.UTC) }
	return svc
}

func TestStokChartDaily(t *testing.T) {
	repo := &fakeRepo{rows: []MovementRow{
		{Bucket: day("2026-10-12"), Jenis: models.JenisMasuk, Total: 5},
		{Bucket: day("2026-10-14"), Jenis: models.JenisKeluar, Total: 2},
		{Bucket: day("2026-10-14"), Jenis: models.JenisMasuk, Total: 1},
	}}
	out, err := newService(repo).StokChart(context.Background(), PeriodDaily, 3)
	require.NoError(t, err)

	assert.Equal(t, "day", repo.unit)
	assert.Equal(t, "2026-10-12", out.From)
	assert.Equal(t, "2026-10-14", out.To)
	assert.Equal(t, []ChartPoint{
		{Label: "2026-10-12", Masuk: 5},
		{Label: "2026-10-13"},
		{Label: "2026-10-14", Masuk: 1, Keluar: 2},
	}, out.Points)
	assert.Equal(t, ChartTotals{Masuk: 6, Keluar: 2, Net: 4}, out.GrandTotals)
}

func TestStokChartWeeklyStartsOnMonday(t *testing.T) {
	repo := &fakeRepo{rows: []MovementRow{
		{Bucket: day("2026-10-05"), Jenis: models.JenisKeluar, Total: 4},
	}}
	out, err := newService(repo).StokChart(context.Background(), PeriodWeekly, 2)
	require.NoError(t, err)

	assert.Equal(t, "week", repo.unit)
	assert.Equal(t, "2026-10-05", out.From)
	assert.Equal(t, "2026-10-18", out.To)
	require.Len(t, out.Points, 2)
	assert.Equal(t, "2026-10-12", out.Points[1].Label)
	assert.Equal(t, 4, out.Points[0].Keluar)
	assert.Equal(t, -4, out.GrandTotals.Net)
}

func TestStokChartMonthlyDefaults(t *testing.T) {
	repo := &fakeRepo{}
	out, err := newService(repo).StokChart(context.Background(), PeriodMonthly, 0)
	require.NoError(t, err)

	assert.Equal(t, "2025-11-01", out.From)
	assert.Equal(t, "2026-10-31", out.To)
	assert.Len(t, out.Points, 12)
	assert.Equal(t, "2026-10-01", out.Points[11].Label)
}

func TestStokChartRejectsBadInput(t *testing.T) {
	svc := newService(&fakeRepo{})

	_, err := svc.StokChart(context.Background(), "yearly", 0)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	_, err = svc.StokChart(context.Background(), PeriodDaily, 1000)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestRingkasan(t *testing.T) {
	out, err := newService(&fakeRepo{}).Ringkasan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), out.DiBawahMinimum)

	_, err = newService(&fakeRepo{err: errors.New("db down")}).Ringkasan(context.Background())
	assert.Equal(t, apperror.KindInternal, apperror.KindOf(err))
}
