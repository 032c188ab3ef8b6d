package voxel

import "voxelengine/internal/voxelerr"

// RLEEncode compresses a byte array into a sequence of (value, count) pairs,
// both one byte, count in [1, 255]. Runs longer than 255 bytes are split:
// 600 identical bytes encode as (v,255)(v,255)(v,90).
func RLEEncode(data []byte) []byte {
	if len(data) == 0 {
		return nil
	}
	out := make([]byte, 0, len(data)/4+2)
	i := 0
	for i < len(data) {
		v := data[i]
		run := 1
		for i+run < len(data) && data[i+run] == v && run < 255 {
			run++
		}
		out = append(out, v, byte(run))
		i += run
	}
	return out
}

// RLEDecode expands (value, count) pairs back into a byte array. expectLen
// is the chunk's Cx*Cy*Cz; if the reconstructed length differs, the payload
// is rejected per voxelerr.ErrPayloadLengthMismatch and nil is returned.
func RLEDecode(payload []byte, expectLen int) ([]byte, error) {
	if len(payload)%2 != 0 {
		return nil, voxelerr.ErrPayloadLengthMismatch
	}
	out := make([]byte, 0, expectLen)
	for i := 0; i+1 < len(payload); i += 2 {
		v, n := payload[i], payload[i+1]
		if n == 0 {
			return nil, voxelerr.ErrPayloadLengthMismatch
		}
		for k := byte(0); k < n; k++ {
			out = append(out, v)
		}
	}
	if len(out) != expectLen {
		return nil, voxelerr.ErrPayloadLengthMismatch
	}
	return out, nil
}

// EncodeRLE returns the RLE encoding of the array's current contents.
func (a *BlockArray) EncodeRLE() []byte {
	return RLEEncode(a.Bytes())
}

// DecodeRLEInto decodes payload and, on success, replaces the array's
// contents in place. On failure the array is reset to all-air and the error
// is returned, matching the "zero-fill on length mismatch" policy.
func (a *BlockArray) DecodeRLEInto(payload []byte) error {
	decoded, err := RLEDecode(payload, a.size.Volume())
	if err != nil {
		a.Reset()
		return err
	}
	return boolErr(a.BulkReplace(decoded))
}

func boolErr(ok bool) error {
	if ok {
		return nil
	}
	return voxelerr.ErrPayloadLengthMismatch
}
