package domain

import "time"

// NakliyeRecord is one transport job with its fee breakdown.
// Monetary fields are client-supplied; the server never recomputes Toplam.
// SearchText is a storage-internal lowercased concatenation of the
// searchable fields and is stripped from API responses and backups.
type NakliyeRecord struct {
	ID          string     `json:"id" dynamodbav:"id"`
	Tarih       time.Time  `json:"tarih" dynamodbav:"tarih"`
	SiraNo      string     `json:"sira_no" dynamodbav:"sira_no"`
	Musteri     string     `json:"musteri" dynamodbav:"musteri"`
	IrsaliyeNo  string     `json:"irsaliye_no" dynamodbav:"irsaliye_no"`
	Kod         string     `json:"kod,omitempty" dynamodbav:"kod"`
	Ithalat     bool       `json:"ithalat" dynamodbav:"ithalat"`
	Ihracat     bool       `json:"ihracat" dynamodbav:"ihracat"`
	Bos         bool       `json:"bos" dynamodbav:"bos"`
	BosTasima   float64    `json:"bos_tasima" dynamodbav:"bos_tasima"`
	Reefer      float64    `json:"reefer" dynamodbav:"reefer"`
	Bekleme     float64    `json:"bekleme" dynamodbav:"bekleme"`
	Geceleme    float64    `json:"geceleme" dynamodbav:"geceleme"`
	Pazar       float64    `json:"pazar" dynamodbav:"pazar"`
	Harcirah    float64    `json:"harcirah" dynamodbav:"harcirah"`
	Toplam      float64    `json:"toplam" dynamodbav:"toplam"`
	Sistem      float64    `json:"sistem" dynamodbav:"sistem"`
	Yatan       float64    `json:"yatan" dynamodbav:"yatan"`
	YatanTarihi *time.Time `json:"yatan_tarihi,omitempty" dynamodbav:"yatan_tarihi"`
	CreatedAt   time.Time  `json:"created_at" dynamodbav:"created_at"`
	SearchText  string     `json:"-" dynamodbav:"search_text"`
}

type CreateNakliyeRequest struct {
	Tarih       time.Time  `json:"tarih" validate:"required"`
	SiraNo      string     `json:"sira_no" validate:"required"`
	Musteri     string     `json:"musteri" validate:"required"`
	IrsaliyeNo  string     `json:"irsaliye_no" validate:"required"`
	Kod         string     `json:"kod"`
	Ithalat     bool       `json:"ithalat"`
	Ihracat     bool       `json:"ihracat"`
	Bos         bool       `json:"bos"`
	BosTasima   float64    `json:"bos_tasima"`
	Reefer      float64    `json:"reefer"`
	Bekleme     float64    `json:"bekleme"`
	Geceleme    float64    `json:"geceleme"`
	Pazar       float64    `json:"pazar"`
	Harcirah    float64    `json:"harcirah"`
	Toplam      float64    `json:"toplam"`
	Sistem      float64    `json:"sistem"`
	Yatan       float64    `json:"yatan"`
	YatanTarihi *time.Time `json:"yatan_tarihi"`
}

// UpdateNakliyeRequest carries a partial update. Only non-nil fields are
// applied; "absent" and "explicitly zero" are distinguishable.
type UpdateNakliyeRequest struct {
	Tarih       *time.Time `json:"tarih"`
	SiraNo      *string    `json:"sira_no"`
	Musteri     *string    `json:"musteri"`
	IrsaliyeNo  *string    `json:"irsaliye_no"`
	Kod         *string    `json:"kod"`
	Ithalat     *bool      `json:"ithalat"`
	Ihracat     *bool      `json:"ihracat"`
	Bos         *bool      `json:"bos"`
	BosTasima   *float64   `json:"bos_tasima"`
	Reefer      *float64   `json:"reefer"`
	Bekleme     *float64   `json:"bekleme"`
	Geceleme    *float64   `json:"geceleme"`
	Pazar       *float64   `json:"pazar"`
	Harcirah    *float64   `json:"harcirah"`
	Toplam      *float64   `json:"toplam"`
	Sistem      *float64   `json:"sistem"`
	Yatan       *float64   `json:"yatan"`
	YatanTarihi *time.Time `json:"yatan_tarihi"`
}
