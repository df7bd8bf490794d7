package schema

import (
	"strings"
	"testing"
)

func TestValidateApps(t *testing.T) {
	valid := `{
  "billing": {
    "appId": 42,
    "apiTokens": {"read": "abc"},
    "viewId": {},
    "cdn": {"desktop": {"js": ["dist/billing/customize.desktop.js"], "css": []}, "mobile": {"js": [], "css": []}}
  }
}`
	res, err := Validate(KindApps, []byte(valid))
	if err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if !res.Valid {
		t.Fatalf("expected valid, got issues: %v", res.Issues)
	}
}

func TestValidateAppsLegacyShape(t *testing.T) {
	// Older registries stored scope inside cdn and had no mobile css list.
	legacy := `{"hr": {"appId": 7, "cdn": {"scope": "ALL", "desktop": {"js": [], "css": []}, "mobile": {"js": []}}}}`
	res, err := Validate(KindApps, []byte(legacy))
	if err != nil {
		t.Fatal(err)
	}
	if !res.Valid {
		t.Fatalf("legacy registry rejected: %v", res.Issues)
	}
}

func TestValidateAppsRejectsBadAppID(t *testing.T) {
	tests := map[string]string{
		"zero":    `{"a": {"appId": 0}}`,
		"string":  `{"a": {"appId": "42"}}`,
		"missing": `{"a": {"viewId": {}}}`,
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			res, err := Validate(KindApps, []byte(doc))
			if err != nil {
				t.Fatal(err)
			}
			if res.Valid {
				t.Fatal("expected invalid result")
			}
			if !strings.Contains(res.Error(), "/a") {
				t.Errorf("issue path should mention /a, got %q", res.Error())
			}
		})
	}
}

func TestValidateProfiles(t *testing.T) {
	good := `{"development": {"env": "development", "baseUrl": "https://x.cybozu.com", "username": "u", "password": "p"}}`
	res, err := Validate(KindProfiles, []byte(good))
	if err != nil {
		t.Fatal(err)
	}
	if !res.Valid {
		t.Fatalf("unexpected issues: %v", res.Issues)
	}

	bad := `{"qa": {"baseUrl": "https://x", "username": "u", "password": "p"}}`
	res, err = Validate(KindProfiles, []byte(bad))
	if err != nil {
		t.Fatal(err)
	}
	if res.Valid {
		t.Error("unknown environment key should be rejected")
	}
}

func TestValidateManifest(t *testing.T) {
	good := `{"app": 42, "scope": "ALL", "desktop": {"js": [], "css": []}, "mobile": {"js": [], "css": []}}`
	res, err := Validate(KindManifest, []byte(good))
	if err != nil {
		t.Fatal(err)
	}
	if !res.Valid {
		t.Fatalf("unexpected issues: %v", res.Issues)
	}

	bad := `{"app": 42, "scope": "all", "desktop": {"js": [], "css": []}, "mobile": {"js": [], "css": []}}`
	res, err = Validate(KindManifest, []byte(bad))
	if err != nil {
		t.Fatal(err)
	}
	if res.Valid {
		t.Error("lower-case scope should be rejected")
	}
}

func TestValidateMalformedJSON(t *testing.T) {
	if _, err := Validate(KindApps, []byte("{not json")); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestValidateUnknownKind(t *testing.T) {
	if _, err := Validate(Kind("nope"), []byte("{}")); err == nil {
		t.Error("expected error for unknown schema kind")
	}
}
