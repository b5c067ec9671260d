package models

// BrowserQuery holds the data-browser search parameters forwarded to a
// source. Field names follow the QIDO-RS attribute keywords.
type BrowserQuery struct {
	PatientID        string `json:"patient_id,omitempty"`
	PatientName      string `json:"patient_name,omitempty"`
	StudyDate        string `json:"study_date,omitempty"`
	AccessionNumber  string `json:"accession_number,omitempty"`
	Modality         string `json:"modality,omitempty"`
	StudyDescription string `json:"study_description,omitempty"`
	Limit            int    `json:"limit,omitempty"`
	Offset           int    `json:"offset,omitempty"`
}

// Study is one study row returned by the data browser. JSON keys are the
// DICOM tag numbers QIDO-RS responses use.
type Study struct {
	StudyInstanceUID  string   `json:"0020000D"`
	PatientID         string   `json:"00100020"`
	PatientName       string   `json:"00100010"`
	StudyDate         string   `json:"00080020"`
	StudyTime         string   `json:"00080030"`
	StudyDescription  string   `json:"00081030"`
	AccessionNumber   string   `json:"00080050"`
	ModalitiesInStudy []string `json:"00080061"`
	NumberOfSeries    int      `json:"00201206"`
	NumberOfInstances int      `json:"00201208"`
}

// Series is one series row returned by the data browser.
type Series struct {
	SeriesInstanceUID string `json:"0020000E"`
	SeriesNumber      int    `json:"00200011"`
	Modality          string `json:"00080060"`
	SeriesDescription string `json:"0008103E"`
	BodyPartExamined  string `json:"00180015"`
	NumberOfInstances int    `json:"00201209"`
}

// Instance is one instance row returned by the data browser.
type Instance struct {
	SOPInstanceUID string `json:"00080018"`
	SOPClassUID    string `json:"00080016"`
	InstanceNumber int    `json:"00200013"`
}
