package schema

import (
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestModelIDGeneration(t *testing.T) {
	id, err := NewModelID()
	if err != nil {
		t.Fatalf("Failed to generate model ID: %v", err)
	}
	if !strings.HasPrefix(id, "MOD-") {
		t.Errorf("Model ID should start with MOD-, got %s", id)
	}
	if len(strings.TrimPrefix(id, "MOD-")) != 10 {
		t.Errorf("Nanoid portion should be 10 characters, got %s", id)
	}
}

func TestModelIDCollisionResistance(t *testing.T) {
	ids := make(map[string]bool)
	for i := 0; i < 10000; i++ {
		id, err := NewModelID()
		if err != nil {
			t.Fatalf("Failed to generate ID: %v", err)
		}
		if ids[id] {
			t.Fatalf("Collision detected: %s", id)
		}
		ids[id] = true
	}
}

func TestMandatoryKeysOrder(t *testing.T) {
	keys := MandatoryKeys()
	if len(keys) != 10 {
		t.Fatalf("expected 10 mandatory keys, got %d", len(keys))
	}
	if keys[0] != KeyGeneralExperience || keys[9] != KeyMandatoryProof {
		t.Errorf("unexpected ordering: %v", keys)
	}

	i := 1
	for _, g := range GroupIDs {
		for _, item := range ItemIDs {
			if keys[i] != ItemKey(g, item) {
				t.Errorf("position %d: expected %s, got %s", i, ItemKey(g, item), keys[i])
			}
			i++
		}
	}

	if IsMandatory(KeyError) {
		t.Error("error key must not be mandatory")
	}
	if !IsMandatory(KeyGroup2ItemIII) {
		t.Error("group_2_item_iii must be mandatory")
	}
}

func TestDescription(t *testing.T) {
	m := DefaultModel()

	tests := []struct {
		key   RequirementKey
		empty bool
	}{
		{KeyGeneralExperience, false},
		{KeyGroup1ItemI, false},
		{KeyGroup2ItemIV, false},
		{KeyMandatoryProof, false},
		{RequirementKey("group_3_item_i"), true},
		{RequirementKey("group_1_item_v"), true},
		{RequirementKey("bogus"), true},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			got := m.Description(tt.key)
			if tt.empty && got != "" {
				t.Errorf("expected empty description, got %q", got)
			}
			if !tt.empty && got == "" {
				t.Error("expected a description")
			}
		})
	}

	var nilModel *ComplianceModel
	if nilModel.Description(KeyGeneralExperience) != "" {
		t.Error("nil model should describe nothing")
	}
}

func TestValidateModel(t *testing.T) {
	if err := ValidateModel(DefaultModel()); err != nil {
		t.Fatalf("default model should be valid: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(m *ComplianceModel)
		errMsg string
	}{
		{"missing name", func(m *ComplianceModel) { m.Name = "" }, "Name"},
		{"missing id", func(m *ComplianceModel) { m.ID = "" }, "ID"},
		{"bad kind", func(m *ComplianceModel) { m.Kind = "pdf" }, "Kind"},
		{"unknown group", func(m *ComplianceModel) {
			m.Requirements.Groups["3"] = Group{Name: "extra"}
		}, "unknown group"},
		{"unknown item", func(m *ComplianceModel) {
			m.Requirements.Groups["1"].Items["v"] = "extra"
		}, "unknown item"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := DefaultModel()
			tt.mutate(m)
			err := ValidateModel(m)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("expected error containing %q, got %v", tt.errMsg, err)
			}
		})
	}

	if err := ValidateModel(nil); err == nil {
		t.Error("nil model should fail validation")
	}
}

func TestValidateEnums(t *testing.T) {
	for _, c := range []Classification{ClassificationMet, ClassificationDoubtful, ClassificationMissing} {
		if err := ValidateClassification(c); err != nil {
			t.Errorf("%s should be valid: %v", c, err)
		}
	}
	if ValidateClassification("PARCIAL") == nil {
		t.Error("PARCIAL should be rejected")
	}
	if ValidateStatus(StatusApproved) != nil || ValidateStatus(StatusRejected) != nil {
		t.Error("known statuses should be valid")
	}
	if ValidateStatus("ERRO") == nil {
		t.Error("ERRO should be rejected")
	}
}

func TestRuleResultAdd(t *testing.T) {
	r := NewRuleResult()
	r.Add(Score{Key: KeyGeneralExperience, Classification: ClassificationMet, Evidence: "ok"})
	r.Add(Score{Key: KeyGroup1ItemI, Classification: ClassificationDoubtful, Evidence: "partial"})
	r.Add(Score{Key: KeyGroup1ItemII, Classification: ClassificationMissing, Evidence: "none"})

	if len(r.Met) != 1 || len(r.Doubtful) != 1 || len(r.Missing) != 1 {
		t.Fatalf("unexpected buckets: %+v", r)
	}
	if r.Evidence[KeyGroup1ItemI] != "partial" {
		t.Errorf("evidence not recorded: %v", r.Evidence)
	}
	if r.Scores[KeyGroup1ItemII].Classification != ClassificationMissing {
		t.Error("score not recorded")
	}
}

func TestVerdictClassification(t *testing.T) {
	v := &Verdict{
		Met:      []RequirementKey{KeyGeneralExperience},
		Doubtful: []RequirementKey{KeyGroup1ItemIII},
		Missing:  []RequirementKey{KeyMandatoryProof},
	}

	if c, ok := v.Classification(KeyGroup1ItemIII); !ok || c != ClassificationDoubtful {
		t.Errorf("expected DUVIDOSO, got %s", c)
	}
	if _, ok := v.Classification(KeyGroup2ItemI); ok {
		t.Error("unclassified key reported as classified")
	}
}

func TestAIResultJSONShape(t *testing.T) {
	raw := `{
		"met": ["general_experience"],
		"missing": ["mandatory_proof"],
		"doubtful": [],
		"evidence": {"general_experience": "menciona tributário"},
		"overall_status": "REPROVADO",
		"rationale": "faltam certidões"
	}`

	var res AIResult
	if err := json.Unmarshal([]byte(raw), &res); err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if res.OverallStatus != StatusRejected {
		t.Errorf("expected REPROVADO, got %s", res.OverallStatus)
	}
	if res.Evidence[KeyGeneralExperience] == "" || res.Rationale == "" {
		t.Errorf("fields not decoded: %+v", res)
	}

	degraded := DegradedAIResult()
	if degraded.OverallStatus != StatusRejected || len(degraded.Met) != 0 || degraded.Evidence == nil {
		t.Errorf("unexpected degraded result: %+v", degraded)
	}
}

func TestModelYAMLRoundTrip(t *testing.T) {
	m := DefaultModel()
	m.ReferenceText = "MODELO DE REFERÊNCIA"

	data, err := yaml.Marshal(m)
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}

	var decoded ComplianceModel
	if err := yaml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if decoded.Description(KeyGroup2ItemIII) != m.Description(KeyGroup2ItemIII) {
		t.Error("group descriptions lost in YAML round trip")
	}
	if !decoded.CreatedAt.Equal(m.CreatedAt) {
		t.Errorf("created_at mismatch: %v vs %v", decoded.CreatedAt, m.CreatedAt)
	}

	stripped := m.WithoutReferenceText()
	if stripped.ReferenceText != "" || m.ReferenceText == "" {
		t.Error("WithoutReferenceText must clear only the copy")
	}
}
