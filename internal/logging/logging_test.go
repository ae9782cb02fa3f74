// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewLogger_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, "text", false)

	log.Info("sync complete", "new", 3)

	out := buf.String()
	if !strings.Contains(out, "sync complete") || !strings.Contains(out, "new=3") {
		t.Errorf("unexpected text output: %s", out)
	}
}

func TestNewLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, "json", false)

	log.Info("sync complete", "new", 3)

	var record map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not JSON: %v (%s)", err, buf.String())
	}
	if record["msg"] != "sync complete" {
		t.Errorf("msg = %v", record["msg"])
	}
	if record["new"] != float64(3) {
		t.Errorf("new = %v", record["new"])
	}
}

func TestNewLogger_QuietSuppressesInfo(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, "text", true)

	log.Info("not shown")
	if buf.Len() != 0 {
		t.Errorf("info logged in quiet mode: %s", buf.String())
	}

	log.Warn("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Error("warning suppressed in quiet mode")
	}
}

func TestDiscard(t *testing.T) {
	// Must not panic and must swallow everything.
	Discard().Error("dropped")
}
