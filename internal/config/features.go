package config

import "os"

// Feature flag environment variables.
const (
	envFeatureAIDocumentProcessing = "FEATURE_AI_DOCUMENT_PROCESSING"
	envFeatureAutomatedBackground  = "FEATURE_AUTOMATED_BACKGROUND_CHECK"
	envFeatureDigitalSignatures    = "FEATURE_DIGITAL_SIGNATURES"
	envFeatureHRISIntegration      = "FEATURE_INTEGRATION_HRIS"
)

// Features holds the boolean toggles that gate optional subsystems. Each is
// read once at startup from its environment variable; all default to off
// except digital signatures.
type Features struct {
	AIDocumentProcessing     bool `json:"ai_document_processing"`
	AutomatedBackgroundCheck bool `json:"automated_background_check"`
	DigitalSignatures        bool `json:"digital_signatures"`
	HRISIntegration          bool `json:"integration_hris"`
}

func loadFeatures() Features {
	return Features{
		AIDocumentProcessing:     featureEnabled(envFeatureAIDocumentProcessing, false),
		AutomatedBackgroundCheck: featureEnabled(envFeatureAutomatedBackground, false),
		DigitalSignatures:        featureEnabled(envFeatureDigitalSignatures, true),
		HRISIntegration:          featureEnabled(envFeatureHRISIntegration, false),
	}
}

// featureEnabled reads a case-insensitive boolean from the environment,
// falling back to the documented default only when the variable is unset.
// A variable set to the empty string counts as set, and parses to false.
func featureEnabled(name string, fallback bool) bool {
	val, ok := os.LookupEnv(name)
	if !ok {
		return fallback
	}
	return parseBool(val)
}
