package dimse

import (
	"encoding/binary"
	"testing"
)

func TestBuildCEchoPDV(t *testing.T) {
	pdv := buildCEchoPDV(3)

	if len(pdv) < 6 {
		t.Fatalf("PDV too short: %d bytes", len(pdv))
	}

	pdvLen := binary.BigEndian.Uint32(pdv[0:4])
	if int(pdvLen) != len(pdv)-4 {
		t.Errorf("PDV length %d does not match body %d", pdvLen, len(pdv)-4)
	}
	if pdv[4] != 3 {
		t.Errorf("unexpected presentation context ID %d", pdv[4])
	}
	if pdv[5] != fragmentCommand {
		t.Errorf("unexpected message control header 0x%02x", pdv[5])
	}

	// First element must be the group length covering the rest exactly.
	data := pdv[6:]
	if binary.LittleEndian.Uint16(data[0:2]) != 0x0000 ||
		binary.LittleEndian.Uint16(data[2:4]) != elemCommandGroupLength {
		t.Fatal("group length element not first")
	}
	groupLen := binary.LittleEndian.Uint32(data[8:12])
	if int(groupLen) != len(data)-12 {
		t.Errorf("group length %d does not cover remaining %d bytes", groupLen, len(data)-12)
	}

	// Walk the command set and check the C-ECHO-RQ essentials.
	elements := map[uint16][]byte{}
	rest := data
	for len(rest) >= 8 {
		element := binary.LittleEndian.Uint16(rest[2:4])
		length := binary.LittleEndian.Uint32(rest[4:8])
		rest = rest[8:]
		elements[element] = rest[:length]
		rest = rest[length:]
	}

	if got := binary.LittleEndian.Uint16(elements[elemCommandField]); got != commandCEchoRQ {
		t.Errorf("command field 0x%04x, want C-ECHO-RQ", got)
	}
	if got := binary.LittleEndian.Uint16(elements[elemDataSetType]); got != noDataSet {
		t.Errorf("data set type 0x%04x, want no data set", got)
	}
	if len(elements[elemAffectedSOPClass])%2 != 0 {
		t.Error("affected SOP class UID not even-padded")
	}
}

func TestCommandStatus(t *testing.T) {
	// Assemble a minimal C-ECHO-RSP command set.
	var cmd []byte
	cmd = appendElement(cmd, elemCommandField, uint16Bytes(0x8030))
	cmd = appendElement(cmd, elemDataSetType, uint16Bytes(noDataSet))
	cmd = appendElement(cmd, elemStatus, uint16Bytes(statusSuccess))

	body := make([]byte, 6, 6+len(cmd))
	binary.BigEndian.PutUint32(body[0:], uint32(2+len(cmd)))
	body[4] = 1
	body[5] = fragmentCommand
	body = append(body, cmd...)

	status, err := commandStatus(body)
	if err != nil {
		t.Fatal(err)
	}
	if status != statusSuccess {
		t.Errorf("status 0x%04x, want success", status)
	}
}

func TestCommandStatusRejectsMalformed(t *testing.T) {
	cases := map[string][]byte{
		"empty":             nil,
		"truncated header":  {0x00, 0x00},
		"length overflow":   {0xff, 0xff, 0xff, 0xff, 0x01, 0x03},
		"no status element": func() []byte {
			cmd := appendElement(nil, elemCommandField, uint16Bytes(0x8030))
			body := make([]byte, 6, 6+len(cmd))
			binary.BigEndian.PutUint32(body[0:], uint32(2+len(cmd)))
			body[4] = 1
			body[5] = fragmentCommand
			return append(body, cmd...)
		}(),
	}

	for name, body := range cases {
		if _, err := commandStatus(body); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestPadAET(t *testing.T) {
	padded := padAET("AXIOM")
	if len(padded) != 16 {
		t.Fatalf("AE title must be 16 bytes, got %d", len(padded))
	}
	if string(padded[:5]) != "AXIOM" || padded[5] != ' ' {
		t.Errorf("unexpected padding: %q", padded)
	}

	long := padAET("A_VERY_LONG_AE_TITLE_INDEED")
	if len(long) != 16 {
		t.Errorf("overlong AE title must truncate to 16 bytes, got %d", len(long))
	}
}

func TestUIDBytesEvenPadding(t *testing.T) {
	odd := uidBytes("1.2.3")
	if len(odd)%2 != 0 || odd[len(odd)-1] != 0x00 {
		t.Errorf("odd UID not null-padded: %v", odd)
	}
	even := uidBytes("1.2.34")
	if len(even) != 6 {
		t.Errorf("even UID must be unchanged: %v", even)
	}
}
