package discord

import (
	"encoding/binary"
	"encoding/json"
	"io"
	"net"
	"strings"
	"testing"
)

// writeRawFrame writes a frame the way the Discord client does
func writeRawFrame(w io.Writer, opcode uint32, payload []byte) {
	header := make([]byte, 8)
	binary.LittleEndian.PutUint32(header[0:4], opcode)
	binary.LittleEndian.PutUint32(header[4:8], uint32(len(payload)))
	_, _ = w.Write(header)
	_, _ = w.Write(payload)
}

func TestWriteFrame(t *testing.T) {
	client, server := net.Pipe()
	defer func() { _ = client.Close() }()
	defer func() { _ = server.Close() }()

	c := &ipcClient{conn: client}

	payload := `{"cmd":"SET_ACTIVITY","nonce":"abc123"}`
	go func() {
		if err := c.writeFrame(opFrame, []byte(payload)); err != nil {
			t.Errorf("writeFrame: %v", err)
		}
	}()

	header := make([]byte, 8)
	if _, err := io.ReadFull(server, header); err != nil {
		t.Fatalf("read header: %v", err)
	}
	if op := binary.LittleEndian.Uint32(header[0:4]); op != opFrame {
		t.Errorf("opcode = %d, want %d", op, opFrame)
	}
	length := binary.LittleEndian.Uint32(header[4:8])
	if int(length) != len(payload) {
		t.Errorf("length = %d, want %d", length, len(payload))
	}

	body := make([]byte, length)
	if _, err := io.ReadFull(server, body); err != nil {
		t.Fatalf("read body: %v", err)
	}
	if string(body) != payload {
		t.Errorf("body = %q, want %q", body, payload)
	}
}

func TestReadFrameLargePayload(t *testing.T) {
	client, server := net.Pipe()
	defer func() { _ = client.Close() }()
	defer func() { _ = server.Close() }()

	c := &ipcClient{conn: server}

	large := []byte(strings.Repeat("x", 4096))
	go writeRawFrame(client, opFrame, large)

	opcode, payload, err := c.readFrame()
	if err != nil {
		t.Fatalf("readFrame: %v", err)
	}
	if opcode != opFrame {
		t.Errorf("opcode = %d, want %d", opcode, opFrame)
	}
	if len(payload) != len(large) {
		t.Errorf("payload length = %d, want %d", len(payload), len(large))
	}
}

func TestReadFrameRejectsOversizedFrame(t *testing.T) {
	client, server := net.Pipe()
	defer func() { _ = client.Close() }()
	defer func() { _ = server.Close() }()

	c := &ipcClient{conn: server}

	go func() {
		header := make([]byte, 8)
		binary.LittleEndian.PutUint32(header[0:4], opFrame)
		binary.LittleEndian.PutUint32(header[4:8], maxFrameSize+1)
		_, _ = client.Write(header)
	}()

	if _, _, err := c.readFrame(); err == nil {
		t.Fatal("expected error for oversized frame")
	}
}

func TestSetActivity(t *testing.T) {
	tests := []struct {
		name     string
		response string
		wantErr  string
	}{
		{
			name:     "accepted",
			response: `{"cmd":"SET_ACTIVITY","evt":null,"data":{}}`,
		},
		{
			name:     "discord error",
			response: `{"cmd":"SET_ACTIVITY","evt":"ERROR","data":{"code":4000,"message":"invalid payload"}}`,
			wantErr:  "discord error 4000: invalid payload",
		},
		{
			name:     "malformed response",
			response: `not json`,
			wantErr:  "unmarshal response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, server := net.Pipe()
			defer func() { _ = client.Close() }()
			defer func() { _ = server.Close() }()

			c := &ipcClient{conn: client}

			sent := make(chan map[string]any, 1)
			go func() {
				header := make([]byte, 8)
				if _, err := io.ReadFull(server, header); err != nil {
					return
				}
				body := make([]byte, binary.LittleEndian.Uint32(header[4:8]))
				if _, err := io.ReadFull(server, body); err != nil {
					return
				}
				var req map[string]any
				_ = json.Unmarshal(body, &req)
				sent <- req
				writeRawFrame(server, opFrame, []byte(tt.response))
			}()

			err := c.SetActivity(Activity{Type: activityListening, Details: "Believe"})
			if tt.wantErr == "" && err != nil {
				t.Fatalf("SetActivity: %v", err)
			}
			if tt.wantErr != "" && (err == nil || !strings.Contains(err.Error(), tt.wantErr)) {
				t.Fatalf("error = %v, want %q", err, tt.wantErr)
			}

			req := <-sent
			if req["cmd"] != "SET_ACTIVITY" {
				t.Errorf("cmd = %v, want SET_ACTIVITY", req["cmd"])
			}
			args, _ := req["args"].(map[string]any)
			activity, _ := args["activity"].(map[string]any)
			if activity["details"] != "Believe" {
				t.Errorf("details = %v, want Believe", activity["details"])
			}
		})
	}
}

func TestSocketDirs(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", "/run/user/1000")
	t.Setenv("TMPDIR", "")
	t.Setenv("TMP", "")
	t.Setenv("TEMP", "")

	dirs := socketDirs()
	if len(dirs) == 0 || dirs[0] != "/run/user/1000" {
		t.Errorf("expected XDG_RUNTIME_DIR first, got %v", dirs)
	}
	if dirs[len(dirs)-1] != "/tmp" {
		t.Errorf("expected /tmp last, got %v", dirs)
	}
}
