package redaction

import "github.com/NeuralTrust/TrustMask/pkg/detection"

// DetectionCounts are per-detector span counts taken before overlap
// resolution, so they may add up to more than the final detection count.
type DetectionCounts struct {
	Regex    int `json:"regex"`
	NLP      int `json:"nlp"`
	Location int `json:"location"`
	Medical  int `json:"medical"`
}

type MaskResult struct {
	OriginalText   string          `json:"original_text"`
	MaskedText     string          `json:"masked_text"`
	Detections     detection.Spans `json:"detections"`
	DetectionCount int             `json:"detection_count"`
	DetectionTypes DetectionCounts `json:"detection_types"`
}

type AnalysisResult struct {
	RegexDetections    detection.Spans `json:"regex_detections"`
	NERDetections      detection.Spans `json:"nlp_detections"`
	LocationDetections detection.Spans `json:"location_detections"`
	MedicalDetections  detection.Spans `json:"medical_detections"`
	TotalDetections    int             `json:"total_detections"`
}
