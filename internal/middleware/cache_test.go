package middleware

import (
	"bytes"
	"net/http"
	"testing"
)

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{}
	hdr.Set("Content-Type", "application/json")
	hdr.Add("X-Custom", "a")
	hdr.Add("X-Custom", "b")
	body := []byte(`{"items":[]}`)

	enc, err := encodePayload(http.StatusOK, hdr, body)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	status, gotHdr, gotBody, ok := decodePayload(enc)
	if !ok {
		t.Fatal("decode failed")
	}
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if gotHdr.Get("Content-Type") != "application/json" {
		t.Fatalf("content type = %q", gotHdr.Get("Content-Type"))
	}
	if vals := gotHdr["X-Custom"]; len(vals) != 2 || vals[0] != "a" || vals[1] != "b" {
		t.Fatalf("multi-value header = %v", vals)
	}
	if !bytes.Equal(gotBody, body) {
		t.Fatalf("body = %q, want %q", gotBody, body)
	}
}

func TestPayloadRoundTripEmptyBody(t *testing.T) {
	enc, err := encodePayload(http.StatusNoContent, http.Header{}, nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	status, _, body, ok := decodePayload(enc)
	if !ok || status != http.StatusNoContent || len(body) != 0 {
		t.Fatalf("got ok=%v status=%d body=%q", ok, status, body)
	}
}

func TestDecodePayloadRejectsGarbage(t *testing.T) {
	cases := [][]byte{
		nil,
		{},
		{0, 0, 0},                      // shorter than the fixed prefix
		{0, 0, 0, 200, 255, 255, 0, 0}, // header length beyond buffer
	}
	for _, bs := range cases {
		if _, _, _, ok := decodePayload(bs); ok {
			t.Fatalf("decodePayload(%v) accepted garbage", bs)
		}
	}
}
