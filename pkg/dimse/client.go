// Package dimse implements the minimal DICOM upper layer the admin service
// needs to verify DIMSE data sources: association negotiation, C-ECHO and a
// small association pool. Query/retrieve is deliberately not implemented
// here; the data browser goes through DICOMweb-capable sources.
package dimse

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"sync"
	"time"
)

// PDU types of the DICOM upper layer protocol.
const (
	pduAssociateRQ = 0x01
	pduAssociateAC = 0x02
	pduAssociateRJ = 0x03
	pduPDataTF     = 0x04
	pduReleaseRQ   = 0x05
	pduReleaseRP   = 0x06
	pduAbort       = 0x07
)

const (
	applicationContextUID = "1.2.840.10008.3.1.1.1"
	verificationSOPClass  = "1.2.840.10008.1.1"
	implicitVRLE          = "1.2.840.10008.1.2"

	implementationClassUID    = "1.2.826.0.1.3680043.10.1172.1"
	implementationVersionName = "AXIOM_ADMIN_1"
)

// AssociationConfig holds configuration for DICOM associations
type AssociationConfig struct {
	Host         string
	Port         int
	CallingAET   string
	CalledAET    string
	Timeout      time.Duration
	MaxPDULength uint32
}

// Association represents one negotiated DICOM association.
type Association struct {
	conn         net.Conn
	callingAET   string
	calledAET    string
	host         string
	port         int
	maxPDULength uint32
	timeout      time.Duration
	mu           sync.Mutex
	isConnected  bool
	lastUsed     time.Time
}

// NewAssociation creates a new DICOM association
func NewAssociation(config AssociationConfig) *Association {
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.MaxPDULength == 0 {
		config.MaxPDULength = 16384
	}

	return &Association{
		callingAET:   config.CallingAET,
		calledAET:    config.CalledAET,
		host:         config.Host,
		port:         config.Port,
		maxPDULength: config.MaxPDULength,
		timeout:      config.Timeout,
	}
}

// Connect dials the peer and negotiates the association.
func (a *Association) Connect(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.isConnected {
		return nil
	}

	addr := fmt.Sprintf("%s:%d", a.host, a.port)
	dialer := &net.Dialer{Timeout: a.timeout}

	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", addr, err)
	}

	a.conn = conn
	a.isConnected = true
	a.lastUsed = time.Now()

	if err := a.writePDU(pduAssociateRQ, a.buildAssociateRequest()); err != nil {
		a.closeLocked()
		return fmt.Errorf("failed to send associate request: %w", err)
	}

	pduType, _, err := a.readPDU()
	if err != nil {
		a.closeLocked()
		return fmt.Errorf("failed to read associate response: %w", err)
	}
	switch pduType {
	case pduAssociateAC:
		return nil
	case pduAssociateRJ:
		a.closeLocked()
		return fmt.Errorf("association rejected by %s", a.calledAET)
	default:
		a.closeLocked()
		return fmt.Errorf("unexpected PDU type 0x%02x during negotiation", pduType)
	}
}

// Close releases the association and closes the connection.
func (a *Association) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.closeLocked()
}

func (a *Association) closeLocked() error {
	if !a.isConnected {
		return nil
	}
	a.isConnected = false

	// Best-effort A-RELEASE-RQ; the peer may already be gone.
	release := make([]byte, 4)
	_ = a.conn.SetWriteDeadline(time.Now().Add(a.timeout))
	_ = a.writePDULocked(pduReleaseRQ, release)

	return a.conn.Close()
}

// IsConnected checks if the association is still active
func (a *Association) IsConnected() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.isConnected
}

// UpdateLastUsed updates the last used timestamp
func (a *Association) UpdateLastUsed() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lastUsed = time.Now()
}

// LastUsed returns the last used timestamp
func (a *Association) LastUsed() time.Time {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastUsed
}

// writePDU frames and sends one PDU.
func (a *Association) writePDU(pduType byte, body []byte) error {
	if err := a.conn.SetWriteDeadline(time.Now().Add(a.timeout)); err != nil {
		return err
	}
	return a.writePDULocked(pduType, body)
}

func (a *Association) writePDULocked(pduType byte, body []byte) error {
	header := make([]byte, 6)
	header[0] = pduType
	binary.BigEndian.PutUint32(header[2:], uint32(len(body)))

	if _, err := a.conn.Write(header); err != nil {
		return err
	}
	_, err := a.conn.Write(body)
	return err
}

// readPDU reads one complete PDU from the connection.
func (a *Association) readPDU() (byte, []byte, error) {
	if err := a.conn.SetReadDeadline(time.Now().Add(a.timeout)); err != nil {
		return 0, nil, err
	}

	header := make([]byte, 6)
	if _, err := io.ReadFull(a.conn, header); err != nil {
		return 0, nil, fmt.Errorf("failed to read PDU header: %w", err)
	}

	length := binary.BigEndian.Uint32(header[2:])
	if length > 16*1024*1024 {
		return 0, nil, fmt.Errorf("PDU length %d exceeds limit", length)
	}

	body := make([]byte, length)
	if _, err := io.ReadFull(a.conn, body); err != nil {
		return 0, nil, fmt.Errorf("failed to read PDU body: %w", err)
	}

	return header[0], body, nil
}

// buildAssociateRequest builds the A-ASSOCIATE-RQ body. Only the
// Verification SOP class is proposed; this package exists to test
// connectivity, not to move datasets.
func (a *Association) buildAssociateRequest() []byte {
	body := make([]byte, 0, 256)

	// Protocol version, reserved.
	body = append(body, 0x00, 0x01, 0x00, 0x00)
	body = append(body, padAET(a.calledAET)...)
	body = append(body, padAET(a.callingAET)...)
	body = append(body, make([]byte, 32)...)

	body = append(body, subItem(0x10, []byte(applicationContextUID))...)
	body = append(body, a.buildPresentationContext(1, verificationSOPClass)...)
	body = append(body, a.buildUserInformation()...)

	return body
}

// buildPresentationContext proposes one abstract syntax with implicit VR
// little endian transfer syntax.
func (a *Association) buildPresentationContext(id byte, sopClass string) []byte {
	var content []byte
	content = append(content, id, 0x00, 0x00, 0x00)
	content = append(content, subItem(0x30, []byte(sopClass))...)
	content = append(content, subItem(0x40, []byte(implicitVRLE))...)
	return subItem(0x20, content)
}

func (a *Association) buildUserInformation() []byte {
	maxLen := make([]byte, 4)
	binary.BigEndian.PutUint32(maxLen, a.maxPDULength)

	var content []byte
	content = append(content, subItem(0x51, maxLen)...)
	content = append(content, subItem(0x52, []byte(implementationClassUID))...)
	content = append(content, subItem(0x55, []byte(implementationVersionName))...)
	return subItem(0x50, content)
}

// subItem frames one upper-layer item: type, reserved, big-endian length,
// content.
func subItem(itemType byte, content []byte) []byte {
	item := make([]byte, 4, 4+len(content))
	item[0] = itemType
	binary.BigEndian.PutUint16(item[2:], uint16(len(content)))
	return append(item, content...)
}

// padAET pads an AE title to the 16 space-padded bytes the protocol requires.
func padAET(aet string) []byte {
	result := make([]byte, 16)
	for i := range result {
		result[i] = ' '
	}
	copy(result, aet)
	return result
}
