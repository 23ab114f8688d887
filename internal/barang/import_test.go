package barang

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"gudang-backend/internal/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestImportCreatesValidRowsAndReportsTheRest(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil, nil)

	file := workbook(t, [][]any{
		{"kode_barang", "nama_barang", "id_kategori", "satuan", "stok", "stok_minimum", "harga_satuan"},
		{"BRG-001", "Kertas A4", 1, "rim", 10, 5, "55000"},
		{"BRG-002", "Map Plastik", 1, "pcs", "", 20, ""},
		{},
		{"BRG-001", "Kertas A4 Duplikat", 1, "rim", 1, 1, "1"},
		{"BRG-003", "Tinta", 9, "botol", 1, 1, "1"},
		{"BRG-004", "Lakban", "satu", "roll", -2, 1, "abc"},
	})

	res, err := svc.Import(context.Background(), admin, file)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Created)
	assert.Equal(t, 3, res.Skipped)
	require.Len(t, res.Errors, 3)
	assert.Equal(t, "baris 5: kode_barang kode barang sudah digunakan", res.Errors[0])
	assert.Equal(t, "baris 6: id_kategori kategori tidak ditemukan", res.Errors[1])
	assert.True(t, strings.HasPrefix(res.Errors[2], "baris 7: harga_satuan"), res.Errors[2])
	assert.Contains(t, res.Errors[2], "stok harus bilangan bulat >= 0")

	list, err := svc.List(context.Background(), Filter{})
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestImportWithoutHeaderRow(t *testing.T) {
	svc := NewService(newFakeRepo(), nil, nil)
	file := workbook(t, [][]any{
		{"BRG-010", "Spidol", 1, "pcs", 3, 1, "7500.50"},
	})

	res, err := svc.Import(context.Background(), admin, file)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Created)
	assert.Empty(t, res.Errors)
}

func TestImportRejectsNonExcel(t *testing.T) {
	svc := NewService(newFakeRepo(), nil, nil)
	_, err := svc.Import(context.Background(), admin, strings.NewReader("kode,nama\nBRG-1,Kertas"))
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestImportAppliesFieldLimits(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil, nil)
	file := workbook(t, [][]any{
		{strings.Repeat("K", 51), "Kertas A4", 1, "rim", 1, 1, "1"},
		{"BRG-020", "Kertas A4", 1, strings.Repeat("s", 21), 1, 1, "1"},
		{"BRG-021", "", 1, "rim", 1, 1, "1"},
	})

	res, err := svc.Import(context.Background(), admin, file)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Created)
	assert.Equal(t, []string{
		"baris 1: kode_barang maksimal 50 karakter",
		"baris 2: satuan maksimal 20 karakter",
		"baris 3: nama_barang wajib diisi",
	}, res.Errors)
}
