package model

// VersionInfo contains version and migration information for the application.
type VersionInfo struct {
	AppVersion string `json:"app_version"`
	DbVersion  int64  `json:"db_version"`
}

// ReconcileReport summarizes a reconcile run over all assets.
type ReconcileReport struct {
	Checked int `json:"checked"`
	Drifted int `json:"drifted"`
	Failed  int `json:"failed"`
}
