package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// -----------------------------------------------------------------------------
// Ticker Master
// -----------------------------------------------------------------------------

// TickerMasterRow is one listed instrument from the isu_base_info dataset.
// Identity: Code.
type TickerMasterRow struct {
	Code          string     `json:"code"`       // Short code (ISU_SRT_CD), primary key
	ISIN          string     `json:"isin"`       // Full ISIN (ISU_CD)
	NameKr        string     `json:"nameKr"`     // Korean name
	NameKrAbbr    string     `json:"nameKrAbbr"` // Abbreviated Korean name
	NameEn        string     `json:"nameEn"`     // English name
	Market        string     `json:"market"`     // Market type name (MKT_TP_NM)
	SecGroup      string     `json:"secGroup"`   // Security group
	KindStockCert string     `json:"kindStockCert"`
	ListDate      *time.Time `json:"listDate"` // Listing date, null when unknown
	ParValue      string     `json:"parValue"`
	ListShares    string     `json:"listShares"`
}

// TickerMasterRowFromRecord normalizes one raw record. Returns nil when the
// record lacks a usable short code.
func TickerMasterRowFromRecord(market Market, rec RawRecord) *TickerMasterRow {
	if rec == nil {
		return nil
	}
	code := rec.Get("ISU_SRT_CD")
	if code == "" {
		return nil
	}

	return &TickerMasterRow{
		Code:          code,
		ISIN:          rec.Get("ISU_CD"),
		NameKr:        rec.Get("ISU_NM"),
		NameKrAbbr:    rec.Get("ISU_ABBRV"),
		NameEn:        rec.Get("ISU_ENG_NM"),
		Market:        firstNonBlank(rec.Get("MKT_TP_NM"), market.String()),
		SecGroup:      rec.Get("SECUGRP_NM"),
		KindStockCert: rec.Get("KIND_STKCERT_TP_NM"),
		ListDate:      ParseDate(rec.Get("LIST_DD")),
		ParValue:      rec.Get("PARVAL"),
		ListShares:    rec.Get("LIST_SHRS"),
	}
}

// -----------------------------------------------------------------------------
// Daily Trade
// -----------------------------------------------------------------------------

// DailyTradeRow is one instrument's daily trading record from the bydd_trd
// dataset, kept as trimmed upstream strings. Identity: (BasDd, MktNm, IsuCd).
type DailyTradeRow struct {
	BasDd        string `json:"basDd"`
	IsuCd        string `json:"isuCd"`
	IsuNm        string `json:"isuNm"`
	MktNm        string `json:"mktNm"`
	SectTpNm     string `json:"sectTpNm"`
	TddClsprc    string `json:"tddClsprc"`
	CmpprevddPrc string `json:"cmpprevddPrc"`
	FlucRt       string `json:"flucRt"`
	TddOpnprc    string `json:"tddOpnprc"`
	TddHgprc     string `json:"tddHgprc"`
	TddLwprc     string `json:"tddLwprc"`
	AccTrdvol    string `json:"accTrdvol"`
	AccTrdval    string `json:"accTrdval"`
	Mktcap       string `json:"mktcap"`
	ListShrs     string `json:"listShrs"`
}

// DailyTradeRowFromRecord normalizes one raw record. Returns nil when the
// record lacks an instrument code.
func DailyTradeRowFromRecord(basDd string, market Market, rec RawRecord) *DailyTradeRow {
	if rec == nil {
		return nil
	}
	isuCd := rec.Get("ISU_CD")
	if isuCd == "" {
		return nil
	}

	return &DailyTradeRow{
		BasDd:        basDd,
		IsuCd:        isuCd,
		IsuNm:        rec.Get("ISU_NM"),
		MktNm:        firstNonBlank(rec.Get("MKT_NM"), market.String()),
		SectTpNm:     rec.Get("SECT_TP_NM"),
		TddClsprc:    rec.Get("TDD_CLSPRC"),
		CmpprevddPrc: rec.Get("CMPPREVDD_PRC"),
		FlucRt:       rec.Get("FLUC_RT"),
		TddOpnprc:    rec.Get("TDD_OPNPRC"),
		TddHgprc:     rec.Get("TDD_HGPRC"),
		TddLwprc:     rec.Get("TDD_LWPRC"),
		AccTrdvol:    rec.Get("ACC_TRDVOL"),
		AccTrdval:    rec.Get("ACC_TRDVAL"),
		Mktcap:       rec.Get("MKTCAP"),
		ListShrs:     rec.Get("LIST_SHRS"),
	}
}

// -----------------------------------------------------------------------------
// Daily Price
// -----------------------------------------------------------------------------

// DailyPriceRow is the typed OHLC projection of the bydd_trd dataset.
// Identity: (BasDd, Market, IsuCd).
type DailyPriceRow struct {
	BasDd        string              `json:"basDd"`
	Market       string              `json:"market"`
	IsuCd        string              `json:"isuCd"`
	IsuNm        string              `json:"isuNm"`
	SectTpNm     string              `json:"sectTpNm"`
	TddClsprc    decimal.NullDecimal `json:"tddClsprc"`
	CmpprevddPrc decimal.NullDecimal `json:"cmpprevddPrc"`
	FlucRt       decimal.NullDecimal `json:"flucRt"`
	TddOpnprc    decimal.NullDecimal `json:"tddOpnprc"`
	TddHgprc     decimal.NullDecimal `json:"tddHgprc"`
	TddLwprc     decimal.NullDecimal `json:"tddLwprc"`
	AccTrdvol    *int64              `json:"accTrdvol"`
	AccTrdval    decimal.NullDecimal `json:"accTrdval"`
	Mktcap       decimal.NullDecimal `json:"mktcap"`
	ListShrs     *int64              `json:"listShrs"`
}

// DailyPriceRowFromRecord normalizes one raw record. The market name comes
// from MKT_NM when the response carries it, else from the caller's market.
// Returns nil when the record lacks an instrument code.
func DailyPriceRowFromRecord(basDd string, market Market, rec RawRecord) *DailyPriceRow {
	if rec == nil {
		return nil
	}
	isuCd := rec.Get("ISU_CD")
	if isuCd == "" {
		return nil
	}

	return &DailyPriceRow{
		BasDd:        basDd,
		Market:       firstNonBlank(rec.Get("MKT_NM"), market.String()),
		IsuCd:        isuCd,
		IsuNm:        rec.Get("ISU_NM"),
		SectTpNm:     rec.Get("SECT_TP_NM"),
		TddClsprc:    ParseDecimal(rec.Get("TDD_CLSPRC")),
		CmpprevddPrc: ParseDecimal(rec.Get("CMPPREVDD_PRC")),
		FlucRt:       ParseDecimal(rec.Get("FLUC_RT")),
		TddOpnprc:    ParseDecimal(rec.Get("TDD_OPNPRC")),
		TddHgprc:     ParseDecimal(rec.Get("TDD_HGPRC")),
		TddLwprc:     ParseDecimal(rec.Get("TDD_LWPRC")),
		AccTrdvol:    ParseInt64(rec.Get("ACC_TRDVOL")),
		AccTrdval:    ParseDecimal(rec.Get("ACC_TRDVAL")),
		Mktcap:       ParseDecimal(rec.Get("MKTCAP")),
		ListShrs:     ParseInt64(rec.Get("LIST_SHRS")),
	}
}

// -----------------------------------------------------------------------------
// Index Daily Price
// -----------------------------------------------------------------------------

// IndexDailyPriceRow is one index's daily price record.
// Identity: (BasDd, Market, IdxNm).
type IndexDailyPriceRow struct {
	BasDd     string              `json:"basDd"`
	Market    string              `json:"market"`
	IdxNm     string              `json:"idxNm"`
	Clpr      decimal.NullDecimal `json:"clpr"`
	Vs        decimal.NullDecimal `json:"vs"`
	FlucRt    decimal.NullDecimal `json:"flucRt"`
	Opnprc    decimal.NullDecimal `json:"opnprc"`
	Hgprc     decimal.NullDecimal `json:"hgprc"`
	Lwprc     decimal.NullDecimal `json:"lwprc"`
	AccTrdvol decimal.NullDecimal `json:"accTrdvol"`
	AccTrdval decimal.NullDecimal `json:"accTrdval"`
}

// IndexDailyPriceRowFromRecord normalizes one raw record. Returns nil when
// the record lacks an index name.
func IndexDailyPriceRowFromRecord(basDd string, market Market, rec RawRecord) *IndexDailyPriceRow {
	if rec == nil {
		return nil
	}
	idxNm := rec.Get("IDX_NM")
	if idxNm == "" {
		return nil
	}

	return &IndexDailyPriceRow{
		BasDd:     basDd,
		Market:    market.String(),
		IdxNm:     idxNm,
		Clpr:      ParseDecimal(rec.Get("CLPR")),
		Vs:        ParseDecimal(rec.Get("VS")),
		FlucRt:    ParseDecimal(rec.Get("FLUC_RT")),
		Opnprc:    ParseDecimal(rec.Get("OPNPRC")),
		Hgprc:     ParseDecimal(rec.Get("HGPRC")),
		Lwprc:     ParseDecimal(rec.Get("LWPRC")),
		AccTrdvol: ParseDecimal(rec.Get("ACC_TRDVOL")),
		AccTrdval: ParseDecimal(rec.Get("ACC_TRDVAL")),
	}
}
