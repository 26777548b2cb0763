package enum

import (
	"encoding/json"
	"fmt"
)

// Feature is an optional business capability toggled per industry.
type Feature int

const (
	FeatureExpiryTracking Feature = iota
	FeatureBatchTracking
	FeatureSellingPrice
	FeatureTableService
	FeatureBarcodeScanning
	FeatureRequisitionFlow
	FeaturePatientTracking
	FeatureBillOfMaterials
	FeatureAssetTracking
)

var featureNames = [...]string{
	"Expiry Tracking",
	"Batch Tracking",
	"Selling Price Management",
	"Table Service",
	"Barcode Scanning",
	"Requisition Flow",
	"Patient Tracking",
	"Bill of Materials",
	"Asset Tracking",
}

// Features returns every feature in display order.
func Features() []Feature {
	out := make([]Feature, len(featureNames))
	for i := range featureNames {
		out[i] = Feature(i)
	}
	return out
}

func (f Feature) IsValid() bool {
	return f >= FeatureExpiryTracking && f <= FeatureAssetTracking
}

func (f Feature) String() string {
	if !f.IsValid() {
		return fmt.Sprintf("Feature(%d)", int(f))
	}
	return featureNames[f]
}

func (f Feature) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.String())
}
