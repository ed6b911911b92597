package domain

import "time"

// YatanTutarRecord is one recorded incoming payment tied to a work period.
type YatanTutarRecord struct {
	ID             string    `json:"id" dynamodbav:"id"`
	Tutar          float64   `json:"tutar" dynamodbav:"tutar"`
	YatmaTarihi    time.Time `json:"yatma_tarihi" dynamodbav:"yatma_tarihi"`
	DonemBaslangic time.Time `json:"donem_baslangic" dynamodbav:"donem_baslangic"`
	DonemBitis     time.Time `json:"donem_bitis" dynamodbav:"donem_bitis"`
	Aciklama       string    `json:"aciklama,omitempty" dynamodbav:"aciklama"`
	CreatedAt      time.Time `json:"created_at" dynamodbav:"created_at"`
}

type CreateYatanTutarRequest struct {
	Tutar          float64   `json:"tutar"`
	YatmaTarihi    time.Time `json:"yatma_tarihi" validate:"required"`
	DonemBaslangic time.Time `json:"donem_baslangic" validate:"required"`
	DonemBitis     time.Time `json:"donem_bitis" validate:"required"`
	Aciklama       string    `json:"aciklama"`
}

// UpdateYatanTutarRequest carries a partial update; only non-nil fields apply.
type UpdateYatanTutarRequest struct {
	Tutar          *float64   `json:"tutar"`
	YatmaTarihi    *time.Time `json:"yatma_tarihi"`
	DonemBaslangic *time.Time `json:"donem_baslangic"`
	DonemBitis     *time.Time `json:"donem_bitis"`
	Aciklama       *string    `json:"aciklama"`
}
