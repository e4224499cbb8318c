// Package reference holds the static crop, district, and crop-weather lookup
// tables the prediction and weather engines key into.
package reference

import (
	_ "embed"
	"os"
	"slices"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/yield-advisor/internal/model"
)

//go:embed data/reference.yaml
var defaultTables []byte

type tables struct {
	Crops               []model.CropProfile            `yaml:"crops"`
	Districts           []model.DistrictProfile        `yaml:"districts"`
	WeatherRequirements []model.CropWeatherRequirement `yaml:"weather_requirements"`
}

// Options configures how the store is loaded.
type Options struct {
	// Path overrides the embedded tables with a YAML file of the same shape.
	Path string
	// NormalizeDistricts makes district lookups case-insensitive. Crop
	// lookups are always case-insensitive.
	NormalizeDistricts bool
}

// Store is an immutable set of lookup tables. Safe for concurrent use.
type Store struct {
	crops              map[string]model.CropProfile
	districts          map[string]model.DistrictProfile
	requirements       map[string]model.CropWeatherRequirement
	cropIDs            []string
	districtIDs        []string
	normalizeDistricts bool
}

// New loads the embedded tables, or the file at opts.Path when set.
func New(opts Options) (*Store, error) {
	data := defaultTables
	if opts.Path != "" {
		b, err := os.ReadFile(opts.Path)
		if err != nil {
			return nil, eris.Wrapf(err, "reference: read %s", opts.Path)
		}
		data = b
	}
	s, err := Parse(data, opts.NormalizeDistricts)
	if err != nil {
		return nil, err
	}
	zap.L().Debug("reference: tables loaded",
		zap.String("path", opts.Path),
		zap.Int("crops", len(s.crops)),
		zap.Int("districts", len(s.districts)),
		zap.Bool("normalize_districts", opts.NormalizeDistricts),
	)
	return s, nil
}

// Parse builds a store from YAML table data.
func Parse(data []byte, normalizeDistricts bool) (*Store, error) {
	var t tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, eris.Wrap(err, "reference: parse tables")
	}

	s := &Store{
		crops:              make(map[string]model.CropProfile, len(t.Crops)),
		districts:          make(map[string]model.DistrictProfile, len(t.Districts)),
		requirements:       make(map[string]model.CropWeatherRequirement, len(t.WeatherRequirements)),
		normalizeDistricts: normalizeDistricts,
	}

	for _, c := range t.Crops {
		key := cropKey(c.CropID)
		if key == "" {
			return nil, eris.New("reference: crop with empty id")
		}
		if c.AvgYield <= 0 || c.MinYield > c.AvgYield || c.AvgYield > c.MaxYield {
			return nil, eris.Errorf("reference: crop %s has inconsistent yields (min %.0f, avg %.0f, max %.0f)",
				c.CropID, c.MinYield, c.AvgYield, c.MaxYield)
		}
		if _, dup := s.crops[key]; dup {
			return nil, eris.Errorf("reference: duplicate crop %s", c.CropID)
		}
		c.CropID = key
		s.crops[key] = c
		s.cropIDs = append(s.cropIDs, key)
	}

	for _, d := range t.Districts {
		key := s.districtKey(d.DistrictID)
		if key == "" {
			return nil, eris.New("reference: district with empty id")
		}
		if _, dup := s.districts[key]; dup {
			return nil, eris.Errorf("reference: duplicate district %s", d.DistrictID)
		}
		s.districts[key] = d
		s.districtIDs = append(s.districtIDs, d.DistrictID)
	}

	for _, r := range t.WeatherRequirements {
		key := cropKey(r.CropID)
		if r.OptimalTempRange[0] > r.OptimalTempRange[1] {
			return nil, eris.Errorf("reference: crop %s has inverted optimal temperature range", r.CropID)
		}
		r.CropID = key
		s.requirements[key] = r
	}

	slices.Sort(s.cropIDs)
	slices.Sort(s.districtIDs)
	return s, nil
}

// CropProfile returns the profile for cropID, ignoring case and surrounding
// whitespace.
func (s *Store) CropProfile(cropID string) (model.CropProfile, error) {
	c, ok := s.crops[cropKey(cropID)]
	if !ok {
		return model.CropProfile{}, &UnsupportedCropError{CropID: cropID}
	}
	return c, nil
}

// DistrictProfile returns the profile for districtID. The match is exact
// unless the store normalizes districts.
func (s *Store) DistrictProfile(districtID string) (model.DistrictProfile, bool) {
	d, ok := s.districts[s.districtKey(districtID)]
	return d, ok
}

// WeatherRequirement returns the climate requirement for cropID.
func (s *Store) WeatherRequirement(cropID string) (model.CropWeatherRequirement, error) {
	r, ok := s.requirements[cropKey(cropID)]
	if !ok {
		return model.CropWeatherRequirement{}, &UnsupportedCropError{CropID: cropID}
	}
	return r, nil
}

// CropIDs returns the normalized crop identifiers in sorted order.
func (s *Store) CropIDs() []string {
	return slices.Clone(s.cropIDs)
}

// DistrictIDs returns the district identifiers as written in the tables, sorted.
func (s *Store) DistrictIDs() []string {
	return slices.Clone(s.districtIDs)
}

// NormalizeCropID returns the canonical form of a crop identifier.
func NormalizeCropID(cropID string) string {
	return cropKey(cropID)
}

func cropKey(id string) string {
	// cases.Caser is stateful; build one per call.
	return cases.Fold().String(strings.TrimSpace(id))
}

func (s *Store) districtKey(id string) string {
	if s.normalizeDistricts {
		return cropKey(id)
	}
	return id
}
