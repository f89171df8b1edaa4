package tui

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-depselect/pkg/catalog"
	"github.com/goliatone/go-depselect/pkg/testsupport"
)

type stubDriver struct {
	inputs    []string
	selectIdx []int
	inputPos  int
	selectPos int
	selects   []SelectConfig
	infos     []string
	err       error
}

func (s *stubDriver) Input(_ context.Context, _ InputConfig) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.selects = append(s.selects, cfg)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infos = append(s.infos, msg)
	return nil
}

func citiesCatalog() catalog.Catalog {
	return catalog.Catalog{
		{Text: "Montgomery", Value: "mgm", FilterKey: "1"},
		{Text: "Juneau", Value: "jnu", FilterKey: "2"},
		{Text: "Manhattan", Value: "nyc", FilterKey: "4"},
		{Text: "Montreal", Value: "yul", FilterKey: "3"},
	}
}

func TestSession_WalksChain(t *testing.T) {
	states := testsupport.MustLoadCatalog(t, filepath.Join("testdata", "states.json"))
	driver := &stubDriver{selectIdx: []int{0, 3, 0}}
	session := NewSession(WithPromptDriver(driver))

	got, err := session.Run(testsupport.Context(), Chain{
		Root: RootField{Name: "country", Label: "Country", Options: []string{"us", "ca"}},
		Steps: []Step{
			{Name: "state", Label: "State", Catalog: states, InitialValue: "2", IncludeBlank: true},
			{Name: "city", Label: "City", Catalog: citiesCatalog()},
		},
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := map[string]string{"country": "us", "state": "4", "city": "nyc"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Run() mismatch (-want +got):\n%s", diff)
	}

	if len(driver.selects) != 3 {
		t.Fatalf("Select called %d times, want 3", len(driver.selects))
	}
	stateOptions := []string{"(blank)", "Alabama", "Alaska", "New York"}
	if diff := cmp.Diff(stateOptions, driver.selects[1].Options); diff != "" {
		t.Errorf("state options mismatch (-want +got):\n%s", diff)
	}
	if driver.selects[1].DefaultIndex != 2 {
		t.Errorf("state DefaultIndex = %d, want 2 (initial value)", driver.selects[1].DefaultIndex)
	}
	if diff := cmp.Diff([]string{"Manhattan"}, driver.selects[2].Options); diff != "" {
		t.Errorf("city options mismatch (-want +got):\n%s", diff)
	}
}

func TestSession_CollapseSpacesLeavesTextsAlone(t *testing.T) {
	states := testsupport.MustLoadCatalog(t, filepath.Join("testdata", "states.json"))
	driver := &stubDriver{inputs: []string{"us"}, selectIdx: []int{2}}
	session := NewSession(WithPromptDriver(driver))

	got, err := session.Run(context.Background(), Chain{
		Root:  RootField{Name: "country"},
		Steps: []Step{{Name: "state", Catalog: states, CollapseSpaces: true}},
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got["state"] != "4" {
		t.Errorf("state = %q, want %q", got["state"], "4")
	}
	if diff := cmp.Diff([]string{"Alabama", "Alaska", "New York"}, driver.selects[0].Options); diff != "" {
		t.Errorf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestSession_EmptyFilterContinues(t *testing.T) {
	states := testsupport.MustLoadCatalog(t, filepath.Join("testdata", "states.json"))
	driver := &stubDriver{inputs: []string{"zz"}}
	session := NewSession(WithPromptDriver(driver))

	got, err := session.Run(context.Background(), Chain{
		Root: RootField{Name: "country", Label: "Country"},
		Steps: []Step{
			{Name: "state", Label: "State", Catalog: states},
			{Name: "city", Label: "City", Catalog: citiesCatalog()},
		},
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := map[string]string{"country": "zz", "state": "", "city": ""}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Run() mismatch (-want +got):\n%s", diff)
	}
	if len(driver.selects) != 0 {
		t.Errorf("Select called %d times, want 0", len(driver.selects))
	}
	if len(driver.infos) != 2 || !strings.Contains(driver.infos[0], `no options match "zz"`) {
		t.Errorf("infos = %v, want two empty-filter notices", driver.infos)
	}
}

func TestSession_AbortPropagates(t *testing.T) {
	driver := &stubDriver{err: ErrAborted}
	session := NewSession(WithPromptDriver(driver))

	_, err := session.Run(context.Background(), Chain{Root: RootField{Name: "country"}})
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("Run() error = %v, want ErrAborted", err)
	}
}

func TestSession_ValidatesChain(t *testing.T) {
	session := NewSession(WithPromptDriver(&stubDriver{}))

	cases := []struct {
		name    string
		chain   Chain
		wantErr string
	}{
		{
			name:    "root without name",
			chain:   Chain{},
			wantErr: "root needs a name",
		},
		{
			name: "step without name",
			chain: Chain{
				Root:  RootField{Name: "country"},
				Steps: []Step{{}},
			},
			wantErr: "every step needs a name",
		},
		{
			name: "duplicate step",
			chain: Chain{
				Root:  RootField{Name: "country"},
				Steps: []Step{{Name: "state"}, {Name: "state"}},
			},
			wantErr: "appears twice",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := session.Run(context.Background(), tc.chain)
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("Run() error = %v, want substring %q", err, tc.wantErr)
			}
		})
	}
}
