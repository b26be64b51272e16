package types

import (
	"github.com/Comcast/datagen/core"
	"github.com/Comcast/datagen/suppliers"
)

func degrees(p *params, prefix string, min, max float64) (*suppliers.RandomRange, error) {
	precision, err := p.Int("precision", GeoPrecisionDefault, 4)
	if err != nil {
		return nil, err
	}
	start, err := p.Float(prefix+"start", "", min)
	if err != nil {
		return nil, err
	}
	end, err := p.Float(prefix+"end", "", max)
	if err != nil {
		return nil, err
	}
	return suppliers.NewGeoDegrees(start, end, min, max, precision)
}

// GeoLat supplies latitudes.
func GeoLat(fs *core.FieldSpec, l core.Loader) (core.Supplier, error) {
	return degrees(paramsOf(fs, l), "", suppliers.MinLat, suppliers.MaxLat)
}

// GeoLong supplies longitudes.
func GeoLong(fs *core.FieldSpec, l core.Loader) (core.Supplier, error) {
	return degrees(paramsOf(fs, l), "", suppliers.MinLong, suppliers.MaxLong)
}

// GeoPair supplies "long,lat" (or "lat,long" with lat_first) as one
// string, or as a list with as_list.
func GeoPair(fs *core.FieldSpec, l core.Loader) (core.Supplier, error) {
	p := paramsOf(fs, l)
	lat, err := degrees(p, "lat_", suppliers.MinLat, suppliers.MaxLat)
	if err != nil {
		return nil, err
	}
	long, err := degrees(p, "long_", suppliers.MinLong, suppliers.MaxLong)
	if err != nil {
		return nil, err
	}
	latFirst, err := p.Bool("lat_first", "", false)
	if err != nil {
		return nil, err
	}
	asList, err := p.Bool("as_list", "", false)
	if err != nil {
		return nil, err
	}
	pair := []core.Supplier{long, lat}
	if latFirst {
		pair = []core.Supplier{lat, long}
	}
	return suppliers.NewCombine(pair, p.String("join_with", "", ","), asList)
}
