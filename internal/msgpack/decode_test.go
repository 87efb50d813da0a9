package msgpack

import "testing"

type macroDefault struct {
	Parameter string `msgpack:"parameter"`
	Value     int    `msgpack:"value"`
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	want := macroDefault{Parameter: "limit", Value: 10}

	data, err := Encode(want)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	var got macroDefault
	if err := Decode(data, &got); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got != want {
		t.Errorf("Decode(Encode(x)) = %+v, want %+v", got, want)
	}
}

func TestDecodeMapRoundTrip(t *testing.T) {
	data, err := Encode(map[string]interface{}{"threshold": 3})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	m, err := DecodeMap(data)
	if err != nil {
		t.Fatalf("DecodeMap: %v", err)
	}
	if len(m) != 1 {
		t.Fatalf("DecodeMap returned %d keys, want 1", len(m))
	}
}

func TestDecodeEmptyData(t *testing.T) {
	var v map[string]interface{}
	if err := Decode(nil, &v); err == nil {
		t.Error("Decode with empty data should fail")
	}
}
