package normalize

import (
	_ "embed"
	"log"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed lexicon.yaml
var lexiconYAML []byte

// lexiconFile mirrors the YAML shape of lexicon.yaml.
type lexiconFile struct {
	StreetTypes   map[string][]string `yaml:"street_types"`
	FloorGround   []string            `yaml:"floor_ground"`
	FloorBasement []string            `yaml:"floor_basement"`
	DoorLeft      []string            `yaml:"door_left"`
	DoorRight     []string            `yaml:"door_right"`
	DoorMiddle    []string            `yaml:"door_middle"`
}

// lexiconTables is the read-only lookup form used by the normalizer.
type lexiconTables struct {
	streetCanon map[string]string // variant -> canonical spelling
	floorTags   map[string]string // synonym -> "0" / "-1"
	doorTags    map[string]string // synonym -> left / right / middle
}

var (
	lexOnce   sync.Once
	lexTables *lexiconTables
)

// tables returns the compiled lexicon, parsing it on first use. The embedded
// lexicon must parse; an override file that fails to load falls back to the
// embedded one.
func tables() *lexiconTables {
	lexOnce.Do(func() {
		var f lexiconFile
		if err := yaml.Unmarshal(lexiconYAML, &f); err != nil {
			panic("normalize: embedded lexicon.yaml invalid: " + err.Error())
		}

		if path := os.Getenv("ADDRESS_LEXICON_PATH"); path != "" {
			if override, err := loadOverride(path); err != nil {
				log.Printf("address lexicon override %s unusable, using embedded: %v", path, err)
			} else {
				f = override
			}
		}

		lexTables = compile(f)
	})
	return lexTables
}

func loadOverride(path string) (lexiconFile, error) {
	var f lexiconFile
	b, err := os.ReadFile(path)
	if err != nil {
		return f, err
	}
	if err := yaml.Unmarshal(b, &f); err != nil {
		return f, err
	}
	return f, nil
}

func compile(f lexiconFile) *lexiconTables {
	t := &lexiconTables{
		streetCanon: make(map[string]string),
		floorTags:   make(map[string]string),
		doorTags:    make(map[string]string),
	}
	for canonical, variants := range f.StreetTypes {
		for _, v := range variants {
			t.streetCanon[v] = canonical
		}
	}
	for _, s := range f.FloorGround {
		t.floorTags[s] = "0"
	}
	for _, s := range f.FloorBasement {
		t.floorTags[s] = "-1"
	}
	for _, s := range f.DoorLeft {
		t.doorTags[s] = "left"
	}
	for _, s := range f.DoorRight {
		t.doorTags[s] = "right"
	}
	for _, s := range f.DoorMiddle {
		t.doorTags[s] = "middle"
	}
	return t
}
