package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestStatusTransition(t *testing.T) {
	assert.NoError(t, StatusMenunggu.Transition(StatusDisetujui))
	assert.NoError(t, StatusMenunggu.Transition(StatusDitolak))
	assert.Error(t, StatusMenunggu.Transition(StatusMenunggu))

	for _, final := range []StatusPermintaan{StatusDisetujui, StatusDitolak} {
		assert.True(t, final.IsFinal())
		assert.ErrorIs(t, final.Transition(StatusDisetujui), ErrSudahDiproses)
		assert.ErrorIs(t, final.Transition(StatusDitolak), ErrSudahDiproses)
	}
}

func TestStatusPermintaanValid(t *testing.T) {
	for _, s := range []StatusPermintaan{StatusMenunggu, StatusDisetujui, StatusDitolak} {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, StatusPermintaan("Batal").Valid())
	assert.False(t, StatusPermintaan("disetujui").Valid())
}

func TestJenisTransaksiValid(t *testing.T) {
	assert.True(t, JenisMasuk.Valid())
	assert.True(t, JenisKeluar.Valid())
	assert.False(t, JenisTransaksi("PINJAM").Valid())
	assert.False(t, JenisTransaksi("").Valid())
}

func TestRoleValid(t *testing.T) {
	for _, r := range Roles {
		assert.True(t, r.Valid(), r)
	}
	assert.False(t, Role("Tamu").Valid())
	assert.False(t, Role("").Valid())
	assert.True(t, RoleAdminGudang.IsAdmin())
	assert.False(t, RoleKepalaDivisi.IsAdmin())
}

func TestBarangNilaiStok(t *testing.T) {
	b := Barang{Stok: 4, StokMinimum: 5, HargaSatuan: decimal.RequireFromString("12500.50")}
	assert.True(t, b.NilaiStok().Equal(decimal.RequireFromString("50002")))
	assert.True(t, b.DiBawahMinimum())

	b.Stok = 5
	assert.False(t, b.DiBawahMinimum())
}
