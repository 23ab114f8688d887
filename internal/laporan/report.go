package laporan

import (
	"context"
	"fmt"
	"time"

	"gudang-backend/internal/models"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// Report adalah tabel laporan yang sudah dihitung, siap dirender ke JSON,
// PDF, atau Excel. Sel bertipe string, int, atau decimal.Decimal.
type Report struct {
	Title   string   `json:"judul"`
	Periode string   `json:"periode"`
	Headers []string `json:"headers"`
	Rows    [][]any  `json:"rows"`
	Footer  []string `json:"footer,omitempty"`
}

func build(ctx context.Context, repo Repository, l *models.Laporan) (*Report, error) {
	switch l.JenisLaporan {
	case models.LaporanStok:
		return buildStok(ctx, repo, l)
	case models.LaporanTransaksi:
		return buildTransaksi(ctx, repo, l)
	case models.LaporanPermintaan:
		return buildPermintaan(ctx, repo, l)
	}
	return nil, fmt.Errorf("jenis laporan tidak dikenal: %q", l.JenisLaporan)
}

func periode(l *models.Laporan) string {
	return fmt.Sprintf("Periode %s s/d %s", l.PeriodeAwal.Format(dateLayout), l.PeriodeAkhir.Format(dateLayout))
}

func buildStok(ctx context.Context, repo Repository, l *models.Laporan) (*Report, error) {
	list, err := repo.StokBarang(ctx)
	if err != nil {
		return nil, err
	}

	r := &Report{
		Title:   "Laporan Stok Barang",
		Periode: periode(l),
		Headers: []string{"No", "Kode", "Nama Barang", "Kategori", "Satuan", "Stok", "Stok Minimum", "Harga Satuan", "Nilai Stok"},
	}
	total := decimal.Zero
	var kurang int
	for i := range list {
		b := &list[i]
		kategori := "-"
		if b.Kategori != nil {
			kategori = b.Kategori.NamaKategori
		}
		nilai := b.NilaiStok()
		total = total.Add(nilai)
		if b.DiBawahMinimum() {
			kurang++
		}
		r.Rows = append(r.Rows, []any{
			i + 1, b.KodeBarang, b.NamaBarang, kategori, b.Satuan, b.Stok, b.StokMinimum, b.HargaSatuan, nilai,
		})
	}
	r.Footer = []string{
		fmt.Sprintf("Jumlah barang: %d", len(list)),
		fmt.Sprintf("Di bawah stok minimum: %d", kurang),
		fmt.Sprintf("Total nilai stok: %s", total.StringFixed(2)),
	}
	return r, nil
}

func buildTransaksi(ctx context.Context, repo Repository, l *models.Laporan) (*Report, error) {
	list, err := repo.Transaksi(ctx, l.PeriodeAwal, l.PeriodeAkhir)
	if err != nil {
		return nil, err
	}

	r := &Report{
		Title:   "Laporan Transaksi Barang",
		Periode: periode(l),
		Headers: []string{"No", "Tanggal", "Jenis", "Kode", "Nama Barang", "Jumlah", "Petugas", "Sumber/Tujuan"},
	}
	var masuk, keluar int
	for i := range list {
		t := &list[i]
		var kode, nama, petugas string
		if t.Barang != nil {
			kode, nama = t.Barang.KodeBarang, t.Barang.NamaBarang
		}
		if t.User != nil {
			petugas = t.User.NamaLengkap
		}
		arah := "-"
		switch t.JenisTransaksi {
		case models.JenisMasuk:
			masuk += t.Jumlah
			if t.TransaksiMasuk != nil && t.TransaksiMasuk.Sumber != nil {
				arah = *t.TransaksiMasuk.Sumber
			}
		case models.JenisKeluar:
			keluar += t.Jumlah
			if t.TransaksiKeluar != nil && t.TransaksiKeluar.Tujuan != nil {
				arah = *t.TransaksiKeluar.Tujuan
			}
		}
		r.Rows = append(r.Rows, []any{
			i + 1, t.Tanggal.Format(dateLayout), string(t.JenisTransaksi), kode, nama, t.Jumlah, petugas, arah,
		})
	}
	r.Footer = []string{
		fmt.Sprintf("Jumlah transaksi: %d", len(list)),
		fmt.Sprintf("Total masuk: %d", masuk),
		fmt.Sprintf("Total keluar: %d", keluar),
	}
	return r, nil
}

func buildPermintaan(ctx context.Context, repo Repository, l *models.Laporan) (*Report, error) {
	list, err := repo.Permintaan(ctx, l.PeriodeAwal, l.PeriodeAkhir)
	if err != nil {
		return nil, err
	}

	r := &Report{
		Title:   "Laporan Permintaan Barang",
		Periode: periode(l),
		Headers: []string{"No", "Tanggal", "Pemohon", "Kode", "Nama Barang", "Jumlah", "Status"},
	}
	perStatus := map[models.StatusPermintaan]int{}
	for i := range list {
		p := &list[i]
		var kode, nama, pemohon string
		if p.Barang != nil {
			kode, nama = p.Barang.KodeBarang, p.Barang.NamaBarang
		}
		if p.User != nil {
			pemohon = p.User.NamaLengkap
		}
		perStatus[p.Status]++
		r.Rows = append(r.Rows, []any{
			i + 1, p.CreatedAt.Format(dateLayout), pemohon, kode, nama, p.JumlahDiminta, string(p.Status),
		})
	}
	r.Footer = []string{fmt.Sprintf("Jumlah permintaan: %d", len(list))}
	for _, st := range []models.StatusPermintaan{models.StatusMenunggu, models.StatusDisetujui, models.StatusDitolak} {
		r.Footer = append(r.Footer, fmt.Sprintf("%s: %d", st, perStatus[st]))
	}
	return r, nil
}

// cellText dipakai renderer PDF.
func cellText(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case decimal.Decimal:
		return x.StringFixed(2)
	case time.Time:
		return x.Format(dateLayout)
	default:
		return fmt.Sprint(x)
	}
}
