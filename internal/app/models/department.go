package models

// Department is one row of the canonical department catalogue.
type Department struct {
	Code           string   `json:"code" db:"code" example:"CSE"`
	Name           string   `json:"name" db:"name" example:"Computer Science and Engineering"`
	Aliases        []string `json:"aliases,omitempty" db:"aliases"`
	CatalogVersion string   `json:"catalogVersion" db:"catalog_version" example:"2024.1"`
}
