package domain

import "time"

type OutletStatus string

const (
	OutletFitOut      OutletStatus = "fit_out"
	OutletOperational OutletStatus = "operational"
	OutletExpiring    OutletStatus = "expiring"
	OutletPipeline    OutletStatus = "pipeline"
)

// PropertyTypes is the closed set accepted for premises.property_type.
var PropertyTypes = []string{
	"mall", "high_street", "cloud_kitchen", "metro", "transit", "cyber_park", "hospital", "college",
}

// FranchiseModels is the closed set accepted for franchise.franchise_model.
var FranchiseModels = []string{"FOFO", "FOCO", "COCO", "direct_lease"}

// Outlet is a physical location under an organization. Optional fields are
// pointers; a nil pointer is persisted as NULL, never as a zero value.
type Outlet struct {
	ID              string       `json:"id"`
	OrganizationID  string       `json:"organization_id"`
	Name            string       `json:"name"`
	Brand           *string      `json:"brand,omitempty"`
	Address         *string      `json:"address,omitempty"`
	City            *string      `json:"city,omitempty"`
	State           *string      `json:"state,omitempty"`
	Pincode         *string      `json:"pincode,omitempty"`
	Floor           *string      `json:"floor,omitempty"`
	UnitNumber      *string      `json:"unit_number,omitempty"`
	SuperAreaSqft   *float64     `json:"super_area_sqft,omitempty"`
	CoveredAreaSqft *float64     `json:"covered_area_sqft,omitempty"`
	CarpetAreaSqft  *float64     `json:"carpet_area_sqft,omitempty"`
	PropertyType    *string      `json:"property_type,omitempty"`
	FranchiseModel  *string      `json:"franchise_model,omitempty"`
	Status          OutletStatus `json:"status"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}
