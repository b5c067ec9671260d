package dicomtag

// curated holds the dictionary entries surfaced by Search. Ordering matters:
// earlier entries win when a query matches more than maxSearchResults tags,
// so the most commonly routed-on attributes come first.
var curated = []Reference{
	// Patient module
	{Tag: "0010,0010", Name: "Patient's Name", Keyword: "PatientName", VR: "PN"},
	{Tag: "0010,0020", Name: "Patient ID", Keyword: "PatientID", VR: "LO"},
	{Tag: "0010,0030", Name: "Patient's Birth Date", Keyword: "PatientBirthDate", VR: "DA"},
	{Tag: "0010,0032", Name: "Patient's Birth Time", Keyword: "PatientBirthTime", VR: "TM"},
	{Tag: "0010,0040", Name: "Patient's Sex", Keyword: "PatientSex", VR: "CS"},
	{Tag: "0010,1010", Name: "Patient's Age", Keyword: "PatientAge", VR: "AS"},
	{Tag: "0010,1020", Name: "Patient's Size", Keyword: "PatientSize", VR: "DS"},
	{Tag: "0010,1030", Name: "Patient's Weight", Keyword: "PatientWeight", VR: "DS"},
	{Tag: "0010,2160", Name: "Ethnic Group", Keyword: "EthnicGroup", VR: "SH"},
	{Tag: "0010,4000", Name: "Patient Comments", Keyword: "PatientComments", VR: "LT"},
	{Tag: "0010,0021", Name: "Issuer of Patient ID", Keyword: "IssuerOfPatientID", VR: "LO"},
	{Tag: "0010,1000", Name: "Other Patient IDs", Keyword: "OtherPatientIDs", VR: "LO"},

	// General study module
	{Tag: "0020,000D", Name: "Study Instance UID", Keyword: "StudyInstanceUID", VR: "UI"},
	{Tag: "0008,0020", Name: "Study Date", Keyword: "StudyDate", VR: "DA"},
	{Tag: "0008,0030", Name: "Study Time", Keyword: "StudyTime", VR: "TM"},
	{Tag: "0008,0050", Name: "Accession Number", Keyword: "AccessionNumber", VR: "SH"},
	{Tag: "0008,0090", Name: "Referring Physician's Name", Keyword: "ReferringPhysicianName", VR: "PN"},
	{Tag: "0008,1030", Name: "Study Description", Keyword: "StudyDescription", VR: "LO"},
	{Tag: "0020,0010", Name: "Study ID", Keyword: "StudyID", VR: "SH"},
	{Tag: "0008,1048", Name: "Physician(s) of Record", Keyword: "PhysiciansOfRecord", VR: "PN"},
	{Tag: "0008,0061", Name: "Modalities in Study", Keyword: "ModalitiesInStudy", VR: "CS"},
	{Tag: "0020,1206", Name: "Number of Study Related Series", Keyword: "NumberOfStudyRelatedSeries", VR: "IS"},
	{Tag: "0020,1208", Name: "Number of Study Related Instances", Keyword: "NumberOfStudyRelatedInstances", VR: "IS"},

	// General series module
	{Tag: "0020,000E", Name: "Series Instance UID", Keyword: "SeriesInstanceUID", VR: "UI"},
	{Tag: "0008,0060", Name: "Modality", Keyword: "Modality", VR: "CS"},
	{Tag: "0020,0011", Name: "Series Number", Keyword: "SeriesNumber", VR: "IS"},
	{Tag: "0008,103E", Name: "Series Description", Keyword: "SeriesDescription", VR: "LO"},
	{Tag: "0008,0021", Name: "Series Date", Keyword: "SeriesDate", VR: "DA"},
	{Tag: "0008,0031", Name: "Series Time", Keyword: "SeriesTime", VR: "TM"},
	{Tag: "0018,0015", Name: "Body Part Examined", Keyword: "BodyPartExamined", VR: "CS"},
	{Tag: "0018,1030", Name: "Protocol Name", Keyword: "ProtocolName", VR: "LO"},
	{Tag: "0018,5100", Name: "Patient Position", Keyword: "PatientPosition", VR: "CS"},
	{Tag: "0040,0254", Name: "Performed Procedure Step Description", Keyword: "PerformedProcedureStepDescription", VR: "LO"},
	{Tag: "0020,1209", Name: "Number of Series Related Instances", Keyword: "NumberOfSeriesRelatedInstances", VR: "IS"},

	// SOP common / instance level
	{Tag: "0008,0018", Name: "SOP Instance UID", Keyword: "SOPInstanceUID", VR: "UI"},
	{Tag: "0008,0016", Name: "SOP Class UID", Keyword: "SOPClassUID", VR: "UI"},
	{Tag: "0020,0013", Name: "Instance Number", Keyword: "InstanceNumber", VR: "IS"},
	{Tag: "0008,0005", Name: "Specific Character Set", Keyword: "SpecificCharacterSet", VR: "CS"},
	{Tag: "0008,0008", Name: "Image Type", Keyword: "ImageType", VR: "CS"},
	{Tag: "0008,0023", Name: "Content Date", Keyword: "ContentDate", VR: "DA"},
	{Tag: "0008,0033", Name: "Content Time", Keyword: "ContentTime", VR: "TM"},
	{Tag: "0008,002A", Name: "Acquisition DateTime", Keyword: "AcquisitionDateTime", VR: "DT"},

	// General equipment module
	{Tag: "0008,0070", Name: "Manufacturer", Keyword: "Manufacturer", VR: "LO"},
	{Tag: "0008,0080", Name: "Institution Name", Keyword: "InstitutionName", VR: "LO"},
	{Tag: "0008,0081", Name: "Institution Address", Keyword: "InstitutionAddress", VR: "ST"},
	{Tag: "0008,1010", Name: "Station Name", Keyword: "StationName", VR: "SH"},
	{Tag: "0008,1040", Name: "Institutional Department Name", Keyword: "InstitutionalDepartmentName", VR: "LO"},
	{Tag: "0008,1090", Name: "Manufacturer's Model Name", Keyword: "ManufacturerModelName", VR: "LO"},
	{Tag: "0018,1000", Name: "Device Serial Number", Keyword: "DeviceSerialNumber", VR: "LO"},
	{Tag: "0018,1020", Name: "Software Versions", Keyword: "SoftwareVersions", VR: "LO"},

	// Image pixel module
	{Tag: "0028,0010", Name: "Rows", Keyword: "Rows", VR: "US"},
	{Tag: "0028,0011", Name: "Columns", Keyword: "Columns", VR: "US"},
	{Tag: "0028,0100", Name: "Bits Allocated", Keyword: "BitsAllocated", VR: "US"},
	{Tag: "0028,0101", Name: "Bits Stored", Keyword: "BitsStored", VR: "US"},
	{Tag: "0028,0004", Name: "Photometric Interpretation", Keyword: "PhotometricInterpretation", VR: "CS"},
	{Tag: "0028,0002", Name: "Samples per Pixel", Keyword: "SamplesPerPixel", VR: "US"},
	{Tag: "0028,0008", Name: "Number of Frames", Keyword: "NumberOfFrames", VR: "IS"},

	// Scheduling / workflow
	{Tag: "0040,0244", Name: "Performed Procedure Step Start Date", Keyword: "PerformedProcedureStepStartDate", VR: "DA"},
	{Tag: "0040,0245", Name: "Performed Procedure Step Start Time", Keyword: "PerformedProcedureStepStartTime", VR: "TM"},
	{Tag: "0032,1060", Name: "Requested Procedure Description", Keyword: "RequestedProcedureDescription", VR: "LO"},
	{Tag: "0040,1001", Name: "Requested Procedure ID", Keyword: "RequestedProcedureID", VR: "SH"},
	{Tag: "0008,1032", Name: "Procedure Code Sequence", Keyword: "ProcedureCodeSequence", VR: "SQ"},

	// File meta / transfer
	{Tag: "0002,0010", Name: "Transfer Syntax UID", Keyword: "TransferSyntaxUID", VR: "UI"},
	{Tag: "0002,0002", Name: "Media Storage SOP Class UID", Keyword: "MediaStorageSOPClassUID", VR: "UI"},
	{Tag: "0002,0003", Name: "Media Storage SOP Instance UID", Keyword: "MediaStorageSOPInstanceUID", VR: "UI"},
	{Tag: "0002,0012", Name: "Implementation Class UID", Keyword: "ImplementationClassUID", VR: "UI"},
	{Tag: "0002,0013", Name: "Implementation Version Name", Keyword: "ImplementationVersionName", VR: "SH"},

	// Misc routing-relevant attributes
	{Tag: "0008,0064", Name: "Conversion Type", Keyword: "ConversionType", VR: "CS"},
	{Tag: "0008,0068", Name: "Presentation Intent Type", Keyword: "PresentationIntentType", VR: "CS"},
	{Tag: "0008,0201", Name: "Timezone Offset From UTC", Keyword: "TimezoneOffsetFromUTC", VR: "SH"},
	{Tag: "0012,0062", Name: "Patient Identity Removed", Keyword: "PatientIdentityRemoved", VR: "CS"},
	{Tag: "0012,0063", Name: "De-identification Method", Keyword: "DeidentificationMethod", VR: "LO"},
	{Tag: "0020,0052", Name: "Frame of Reference UID", Keyword: "FrameOfReferenceUID", VR: "UI"},
	{Tag: "0020,4000", Name: "Image Comments", Keyword: "ImageComments", VR: "LT"},
	{Tag: "0032,000A", Name: "Study Status ID", Keyword: "StudyStatusID", VR: "CS"},
	{Tag: "0032,4000", Name: "Study Comments", Keyword: "StudyComments", VR: "LT"},
	{Tag: "0040,0009", Name: "Scheduled Procedure Step ID", Keyword: "ScheduledProcedureStepID", VR: "SH"},
	{Tag: "0040,0241", Name: "Performed Station AE Title", Keyword: "PerformedStationAETitle", VR: "AE"},
}
