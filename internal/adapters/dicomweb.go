package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cplatt-iso/axiom-admin/internal/models"
)

// DICOMWebAdapter implements SourceAdapter over QIDO-RS. Google Healthcare
// sources are DICOMweb endpoints with bearer auth, so they use this adapter
// too.
type DICOMWebAdapter struct {
	BaseAdapter
	client   *http.Client
	baseURL  string
	username string
	password string
	apiKey   string
}

// NewDICOMWebAdapter creates a new DICOMweb adapter
func NewDICOMWebAdapter(source models.DataSource) (*DICOMWebAdapter, error) {
	scheme := "http"
	if source.Port == 443 || source.Type == models.SourceGoogleHealthcare {
		scheme = "https"
	}
	baseURL := fmt.Sprintf("%s://%s:%d/dicom-web", scheme, source.Endpoint, source.Port)

	return &DICOMWebAdapter{
		BaseAdapter: BaseAdapter{source: source},
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:  baseURL,
		username: source.Username,
		password: source.PasswordHash, // In production, decrypt this
		apiKey:   source.APIKey,
	}, nil
}

func (d *DICOMWebAdapter) Capabilities() []string {
	return []string{"QIDO-RS"}
}

// FindStudies queries for studies using QIDO-RS
func (d *DICOMWebAdapter) FindStudies(ctx context.Context, query models.BrowserQuery) ([]models.Study, error) {
	params := url.Values{}
	if query.PatientID != "" {
		params.Add("PatientID", query.PatientID)
	}
	if query.PatientName != "" {
		params.Add("PatientName", query.PatientName)
	}
	if query.StudyDate != "" {
		params.Add("StudyDate", query.StudyDate)
	}
	if query.AccessionNumber != "" {
		params.Add("AccessionNumber", query.AccessionNumber)
	}
	if query.Modality != "" {
		params.Add("ModalitiesInStudy", query.Modality)
	}
	if query.StudyDescription != "" {
		params.Add("StudyDescription", query.StudyDescription)
	}
	if query.Limit > 0 {
		params.Add("limit", strconv.Itoa(query.Limit))
	}
	if query.Offset > 0 {
		params.Add("offset", strconv.Itoa(query.Offset))
	}

	queryURL := d.baseURL + "/studies"
	if len(params) > 0 {
		queryURL += "?" + params.Encode()
	}

	var studies []models.Study
	if err := d.getJSON(ctx, queryURL, &studies); err != nil {
		return nil, err
	}
	return studies, nil
}

// FindSeries queries for series using QIDO-RS
func (d *DICOMWebAdapter) FindSeries(ctx context.Context, studyUID string) ([]models.Series, error) {
	queryURL := fmt.Sprintf("%s/studies/%s/series", d.baseURL, studyUID)

	var series []models.Series
	if err := d.getJSON(ctx, queryURL, &series); err != nil {
		return nil, err
	}
	return series, nil
}

// FindInstances queries for instances using QIDO-RS
func (d *DICOMWebAdapter) FindInstances(ctx context.Context, studyUID, seriesUID string) ([]models.Instance, error) {
	queryURL := fmt.Sprintf("%s/studies/%s/series/%s/instances", d.baseURL, studyUID, seriesUID)

	var instances []models.Instance
	if err := d.getJSON(ctx, queryURL, &instances); err != nil {
		return nil, err
	}
	return instances, nil
}

// TestConnection issues a minimal study query to verify the endpoint.
func (d *DICOMWebAdapter) TestConnection(ctx context.Context) (*models.ConnectionStatus, error) {
	start := time.Now()
	status := &models.ConnectionStatus{
		LastChecked: start,
	}

	_, err := d.FindStudies(ctx, models.BrowserQuery{Limit: 1})

	status.ResponseTime = time.Since(start).Milliseconds()

	if err != nil {
		status.IsConnected = false
		status.ErrorMessage = err.Error()
		return status, err
	}

	status.IsConnected = true
	status.Capabilities = d.Capabilities()
	return status, nil
}

// Close closes the adapter
func (d *DICOMWebAdapter) Close() error {
	d.client.CloseIdleConnections()
	return nil
}

// getJSON performs an authenticated QIDO request and decodes the response.
func (d *DICOMWebAdapter) getJSON(ctx context.Context, queryURL string, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, queryURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	d.addAuth(req)
	req.Header.Set("Accept", "application/dicom+json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	// QIDO returns 204 when the query matches nothing.
	if resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("source returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// addAuth adds authentication to the request
func (d *DICOMWebAdapter) addAuth(req *http.Request) {
	if d.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+d.apiKey)
	} else if d.username != "" && d.password != "" {
		req.SetBasicAuth(d.username, d.password)
	}
}
