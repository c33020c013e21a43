package domain

import "time"

type Governorate struct {
	Id              string
	Name            string
	Code            *string
	MetaTitle       *string
	MetaDescription *string
	MetaKeywords    *string
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}

type ServiceCategory struct {
	Id              string
	Name            string
	Slug            *string
	Icon            *string // filename inside the images bucket
	MetaTitle       *string
	MetaDescription *string
	MetaKeywords    *string
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}
