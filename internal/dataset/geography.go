package dataset

// Region groups provinces for the map view.
type Region string

// PNG administrative regions.
const (
	RegionSouthern  Region = "Southern"
	RegionMomase    Region = "Momase"
	RegionHighlands Region = "Highlands"
	RegionIslands   Region = "Islands"
)

// ProvinceGeo holds approximate map coordinates for one province.
type ProvinceGeo struct {
	ID     string
	Name   string // short map label, not the record's full name
	Region Region
	Lat    float64
	Lng    float64
}

// ProvinceGeos lists coordinates for all 22 provinces, in rough
// west-to-east order.
var ProvinceGeos = []ProvinceGeo{
	{ID: "PROV-15", Name: "Sandaun", Region: RegionMomase, Lat: -3.5, Lng: 141.5},
	{ID: "PROV-14", Name: "East Sepik", Region: RegionMomase, Lat: -4.0, Lng: 143.5},
	{ID: "PROV-13", Name: "Madang", Region: RegionMomase, Lat: -5.2, Lng: 145.5},
	{ID: "PROV-02", Name: "Morobe", Region: RegionMomase, Lat: -6.5, Lng: 147.0},
	{ID: "PROV-17", Name: "Enga", Region: RegionHighlands, Lat: -5.4, Lng: 143.4},
	{ID: "PROV-05", Name: "W. Highlands", Region: RegionHighlands, Lat: -5.8, Lng: 144.3},
	{ID: "PROV-22", Name: "Jiwaka", Region: RegionHighlands, Lat: -6.0, Lng: 144.6},
	{ID: "PROV-10", Name: "Chimbu", Region: RegionHighlands, Lat: -6.1, Lng: 145.0},
	{ID: "PROV-11", Name: "E. Highlands", Region: RegionHighlands, Lat: -6.3, Lng: 145.5},
	{ID: "PROV-03", Name: "S. Highlands", Region: RegionHighlands, Lat: -6.3, Lng: 143.8},
	{ID: "PROV-21", Name: "Hela", Region: RegionHighlands, Lat: -6.0, Lng: 142.8},
	{ID: "PROV-04", Name: "Western", Region: RegionSouthern, Lat: -7.5, Lng: 142.0},
	{ID: "PROV-06", Name: "Gulf", Region: RegionSouthern, Lat: -7.4, Lng: 144.5},
	{ID: "PROV-07", Name: "Central", Region: RegionSouthern, Lat: -9.4, Lng: 147.3},
	{ID: "PROV-01", Name: "NCD", Region: RegionSouthern, Lat: -9.48, Lng: 147.18},
	{ID: "PROV-09", Name: "Oro", Region: RegionSouthern, Lat: -9.0, Lng: 148.5},
	{ID: "PROV-08", Name: "Milne Bay", Region: RegionSouthern, Lat: -10.5, Lng: 150.5},
	{ID: "PROV-20", Name: "Manus", Region: RegionIslands, Lat: -2.1, Lng: 147.0},
	{ID: "PROV-19", Name: "New Ireland", Region: RegionIslands, Lat: -3.0, Lng: 151.5},
	{ID: "PROV-18", Name: "W. New Britain", Region: RegionIslands, Lat: -5.8, Lng: 149.5},
	{ID: "PROV-12", Name: "E. New Britain", Region: RegionIslands, Lat: -4.8, Lng: 152.0},
	{ID: "PROV-16", Name: "Bougainville", Region: RegionIslands, Lat: -6.0, Lng: 155.0},
}

// GeoByID returns the geography metadata for a province id.
func GeoByID(id string) (ProvinceGeo, bool) {
	for _, g := range ProvinceGeos {
		if g.ID == id {
			return g, true
		}
	}
	return ProvinceGeo{}, false
}
