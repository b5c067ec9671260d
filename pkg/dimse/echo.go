package dimse

import (
	"context"
	"encoding/binary"
	"fmt"
)

// Command set elements, implicit VR little endian.
const (
	elemCommandGroupLength = 0x0000
	elemAffectedSOPClass   = 0x0002
	elemCommandField       = 0x0100
	elemMessageID          = 0x0110
	elemDataSetType        = 0x0800
	elemStatus             = 0x0900
)

const (
	commandCEchoRQ  = 0x0030
	noDataSet       = 0x0101
	statusSuccess   = 0x0000
	fragmentCommand = 0x03 // message control header: command, last fragment
)

// CEcho performs a C-ECHO (DICOM ping) over the association, connecting
// first if necessary.
func (a *Association) CEcho(ctx context.Context) error {
	if !a.IsConnected() {
		if err := a.Connect(ctx); err != nil {
			return err
		}
	}

	a.UpdateLastUsed()

	if err := a.writePDU(pduPDataTF, buildCEchoPDV(1)); err != nil {
		return fmt.Errorf("failed to send C-ECHO request: %w", err)
	}

	pduType, body, err := a.readPDU()
	if err != nil {
		return fmt.Errorf("failed to receive C-ECHO response: %w", err)
	}
	if pduType != pduPDataTF {
		return fmt.Errorf("unexpected PDU type 0x%02x in C-ECHO response", pduType)
	}

	status, err := commandStatus(body)
	if err != nil {
		return fmt.Errorf("malformed C-ECHO response: %w", err)
	}
	if status != statusSuccess {
		return fmt.Errorf("C-ECHO failed with status 0x%04x", status)
	}

	return nil
}

// buildCEchoPDV encodes the C-ECHO-RQ command set and wraps it in a single
// presentation data value item.
func buildCEchoPDV(contextID byte) []byte {
	var cmd []byte
	cmd = appendElement(cmd, elemAffectedSOPClass, uidBytes(verificationSOPClass))
	cmd = appendElement(cmd, elemCommandField, uint16Bytes(commandCEchoRQ))
	cmd = appendElement(cmd, elemMessageID, uint16Bytes(1))
	cmd = appendElement(cmd, elemDataSetType, uint16Bytes(noDataSet))

	// Group length element goes first and counts everything after itself.
	groupLen := make([]byte, 4)
	binary.LittleEndian.PutUint32(groupLen, uint32(len(cmd)))
	full := appendElement(nil, elemCommandGroupLength, groupLen)
	full = append(full, cmd...)

	pdv := make([]byte, 6, 6+len(full))
	binary.BigEndian.PutUint32(pdv[0:], uint32(2+len(full)))
	pdv[4] = contextID
	pdv[5] = fragmentCommand
	return append(pdv, full...)
}

// commandStatus walks a P-DATA-TF body and extracts the (0000,0900) Status
// of the first command fragment.
func commandStatus(body []byte) (uint16, error) {
	if len(body) < 6 {
		return 0, fmt.Errorf("P-DATA-TF too short")
	}
	pdvLen := binary.BigEndian.Uint32(body[0:4])
	if int(pdvLen)+4 > len(body) || pdvLen < 2 {
		return 0, fmt.Errorf("PDV length %d out of bounds", pdvLen)
	}

	data := body[6 : 4+pdvLen]
	for len(data) >= 8 {
		group := binary.LittleEndian.Uint16(data[0:2])
		element := binary.LittleEndian.Uint16(data[2:4])
		length := binary.LittleEndian.Uint32(data[4:8])
		data = data[8:]
		if int(length) > len(data) {
			return 0, fmt.Errorf("element (%04x,%04x) length %d out of bounds", group, element, length)
		}
		if group == 0x0000 && element == elemStatus && length >= 2 {
			return binary.LittleEndian.Uint16(data[0:2]), nil
		}
		data = data[length:]
	}
	return 0, fmt.Errorf("no status element in response")
}

// appendElement writes one implicit-VR little-endian element.
func appendElement(dst []byte, element uint16, value []byte) []byte {
	header := make([]byte, 8)
	binary.LittleEndian.PutUint16(header[0:2], 0x0000)
	binary.LittleEndian.PutUint16(header[2:4], element)
	binary.LittleEndian.PutUint32(header[4:8], uint32(len(value)))
	dst = append(dst, header...)
	return append(dst, value...)
}

func uint16Bytes(v uint16) []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, v)
	return b
}

// uidBytes null-pads a UID to even length, as UI values require.
func uidBytes(uid string) []byte {
	b := []byte(uid)
	if len(b)%2 == 1 {
		b = append(b, 0x00)
	}
	return b
}
