package service

import "github.com/MKhiriev/vibeclip/models"

//go:generate mockgen -source=dependencies.go -destination=../mock/service_deps_mock.go -package=mock

// IDGenerator issues unique identifiers for new records.
type IDGenerator interface {
	Generate() string
}

// Catalog provides the read-only demo content.
type Catalog interface {
	Videos() []models.Video
	Sounds() []models.Sound
}
