// Package dashboard menyajikan ringkasan gudang dan grafik pergerakan stok.
package dashboard

import (
	"context"
	"sort"
	"time"

	"gudang-backend/internal/apperror"
	"gudang-backend/internal/models"
)

const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"

	maxCount = 366
)

type ChartPoint struct {
	Label  string `json:"label"` // tanggal awal bucket
	Masuk  int    `json:"masuk"`
	Keluar int    `json:"keluar"`
}

type ChartTotals struct {
	Masuk  int `json:"masuk"`
	Keluar int `json:"keluar"`
	Net    int `json:"net"`
}

type StokChart struct {
	Period      string       `json:"period"`
	From        string       `json:"from"`
	To          string       `json:"to"`
	Points      []ChartPoint `json:"points"`
	GrandTotals ChartTotals  `json:"grand_totals"`
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) Ringkasan(ctx context.Context) (*Counts, error) {
	c, err := s.repo.Counts(ctx)
	if err != nil {
		return nil, apperror.Internal("Gagal mengambil ringkasan", err)
	}
	return c, nil
}

// StokChart menjumlahkan barang masuk dan keluar untuk count bucket terakhir.
// count 0 berarti default per periode (7 hari, 8 minggu, 12 bulan).
func (s *Service) StokChart(ctx context.Context, period string, count int) (*StokChart, error) {
	if count < 0 || count > maxCount {
		return nil, apperror.Field("count", "harus antara 1 dan 366")
	}

	now := s.now()
	loc := now.Location()
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	var start time.Time
	var unit string
	switch period {
	case PeriodDaily, "":
		period, unit = PeriodDaily, "day"
		if count == 0 {
			count = 7
		}
		start = end.AddDate(0, 0, -(count - 1))
	case PeriodWeekly:
		unit = "week"
		if count == 0 {
			count = 8
		}
		end = startOfWeek(end)
		start = end.AddDate(0, 0, -7*(count-1))
		end = end.AddDate(0, 0, 6)
	case PeriodMonthly:
		unit = "month"
		if count == 0 {
			count = 12
		}
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		start = first.AddDate(0, -(count - 1), 0)
		end = first.AddDate(0, 1, -1)
	default:
		return nil, apperror.Field("period", "harus salah satu dari: daily, weekly, monthly")
	}

	rows, err := s.repo.Movements(ctx, unit, start, end)
	if err != nil {
		return nil, apperror.Internal("Gagal mengambil data transaksi", err)
	}

	buckets := make(map[string]*ChartPoint, count)
	for i := 0; i < count; i++ {
		label := step(start, period, i).Format("2006-01-02")
		buckets[label] = &ChartPoint{Label: label}
	}
	for _, r := range rows {
		label := r.Bucket.Format("2006-01-02")
		p, ok := buckets[label]
		if !ok {
			continue
		}
		switch r.Jenis {
		case models.JenisMasuk:
			p.Masuk += r.Total
		case models.JenisKeluar:
			p.Keluar += r.Total
		}
	}

	out := &StokChart{
		Period: period,
		From:   start.Format("2006-01-02"),
		To:     end.Format("2006-01-02"),
		Points: make([]ChartPoint, 0, len(buckets)),
	}
	for _, p := range buckets {
		out.Points = append(out.Points, *p)
		out.GrandTotals.Masuk += p.Masuk
		out.GrandTotals.Keluar += p.Keluar
	}
	sort.Slice(out.Points, func(i, j int) bool { return out.Points[i].Label < out.Points[j].Label })
	out.GrandTotals.Net = out.GrandTotals.Masuk - out.GrandTotals.Keluar
	return out, nil
}

func step(start time.Time, period string, i int) time.Time {
	switch period {
	case PeriodWeekly:
		return start.AddDate(0, 0, 7*i)
	case PeriodMonthly:
		return start.AddDate(0, i, 0)
	}
	return start.AddDate(0, 0, i)
}

// startOfWeek mengikuti date_trunc('week'), minggu dimulai hari Senin.
func startOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}
