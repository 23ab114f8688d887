package barang

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"gudang-backend/internal/apperror"
	"gudang-backend/internal/httpx"
	"gudang-backend/internal/identity"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const maxImportRows = 1000

// ImportResult merangkum hasil impor barang dari file Excel.
type ImportResult struct {
	Created int      `json:"created"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors"`
}

// Import membaca sheet pertama file xlsx dengan kolom:
// kode_barang | nama_barang | id_kategori | satuan | stok | stok_minimum | harga_satuan.
// Baris judul (sel pertama "kode" atau "kode_barang") dilewati. Setiap baris
// dibuat lewat Create sehingga aturan validasi dan log aktivitas sama persis.
// Baris yang gagal dilewati dan dicatat di Errors.
func (s *Service) Import(ctx context.Context, p identity.Principal, r io.Reader) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperror.Field("file", "file Excel tidak dapat dibaca")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperror.Field("file", "file Excel tidak memiliki sheet")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperror.Field("file", "sheet tidak dapat dibaca")
	}

	start := 0
	if len(rows) > 0 && len(rows[0]) > 0 {
		switch strings.ToLower(strings.TrimSpace(rows[0][0])) {
		case "kode", "kode_barang", "kode barang":
			start = 1
		}
	}
	if len(rows)-start > maxImportRows {
		return nil, apperror.Field("file", fmt.Sprintf("maksimal %d baris per impor", maxImportRows))
	}

	res := &ImportResult{Errors: []string{}}
	for i := start; i < len(rows); i++ {
		line := i + 1
		row := rows[i]
		if blank(row) {
			continue
		}

		in, err := parseImportRow(row)
		if err == nil {
			_, err = s.Create(ctx, p, in)
		}
		if err != nil {
			res.Skipped++
			res.Errors = append(res.Errors, fmt.Sprintf("baris %d: %s", line, describe(err)))
			continue
		}
		res.Created++
	}
	return res, nil
}

func parseImportRow(row []string) (CreateInput, error) {
	col := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}
	fields := map[string]string{}
	num := func(i int, name string) int {
		raw := col(i)
		if raw == "" {
			return 0
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			fields[name] = "harus bilangan bulat >= 0"
		}
		return n
	}

	in := CreateInput{
		KodeBarang:  col(0),
		NamaBarang:  col(1),
		Satuan:      col(3),
		Stok:        num(4, "stok"),
		StokMinimum: num(5, "stok_minimum"),
	}
	if id, err := strconv.ParseUint(col(2), 10, 32); err == nil && id > 0 {
		in.KategoriID = uint(id)
	} else {
		fields["id_kategori"] = "harus berupa angka positif"
	}
	if raw := col(6); raw != "" {
		harga, err := decimal.NewFromString(raw)
		if err != nil {
			fields["harga_satuan"] = "harus berupa angka"
		}
		in.HargaSatuan = harga
	}

	// tag validate sama dengan body POST /api/barang
	var verr *apperror.Error
	if errors.As(httpx.Validate(&in), &verr) {
		for k, v := range verr.Fields {
			if _, ok := fields[k]; !ok {
				fields[k] = v
			}
		}
		if len(verr.Fields) == 0 {
			return in, verr
		}
	}

	if len(fields) > 0 {
		return in, apperror.Validation("Validasi gagal", fields)
	}
	return in, nil
}

func describe(err error) string {
	var e *apperror.Error
	if !errors.As(err, &e) || len(e.Fields) == 0 {
		if e != nil {
			return e.Message
		}
		return err.Error()
	}
	parts := make([]string, 0, len(e.Fields))
	for k, v := range e.Fields {
		parts = append(parts, k+" "+v)
	}
	sort.Strings(parts)
	return strings.Join(parts, "; ")
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
