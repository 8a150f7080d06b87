package analytics

// DefaultDataset is the dataset holding the raw page-view events, used when
// no dataset is configured.
const DefaultDataset = "analytics_events"

// Physical columns not addressable as logical fields.
const (
	colTimestamp      = "timestamp"
	colSampleInterval = "sample_interval"
)

// Field is a logical field name exposed by the query layer.
type Field string

const (
	FieldSiteID        Field = "siteId"
	FieldPath          Field = "path"
	FieldReferrer      Field = "referrer"
	FieldBrowserName   Field = "browserName"
	FieldCountry       Field = "country"
	FieldDeviceModel   Field = "deviceModel"
	FieldNewVisitor    Field = "newVisitor"
	FieldNewSession    Field = "newSession"
	FieldVisitDuration Field = "visitDuration"
	FieldPageViews     Field = "pageViews"
)

// columnFor maps logical field names to physical column identifiers in the
// analytics dataset. Only identifiers from this table are ever interpolated
// into query text.
var columnFor = map[Field]string{
	FieldSiteID:        "site_id",
	FieldPath:          "pathname",
	FieldReferrer:      "referrer",
	FieldBrowserName:   "browser",
	FieldCountry:       "country",
	FieldDeviceModel:   "device",
	FieldNewVisitor:    "new_visitor",
	FieldNewSession:    "new_session",
	FieldVisitDuration: "duration",
	FieldPageViews:     "page_views",
}

// Dimension is a categorical attribute counts can be grouped by.
type Dimension string

const (
	DimensionPath     Dimension = "path"
	DimensionReferrer Dimension = "referrer"
	DimensionBrowser  Dimension = "browser"
	DimensionCountry  Dimension = "country"
	DimensionDevice   Dimension = "device"
)

var dimensionField = map[Dimension]Field{
	DimensionPath:     FieldPath,
	DimensionReferrer: FieldReferrer,
	DimensionBrowser:  FieldBrowserName,
	DimensionCountry:  FieldCountry,
	DimensionDevice:   FieldDeviceModel,
}

// ParseDimension validates a dimension name from request input.
func ParseDimension(name string) (Dimension, bool) {
	d := Dimension(name)
	_, ok := dimensionField[d]
	return d, ok
}

// IncludesViews reports whether breakdown rows for this dimension carry a
// per-value view count in addition to the visitor count.
func (d Dimension) IncludesViews() bool {
	return d == DimensionPath || d == DimensionReferrer
}

func (d Dimension) column() string {
	return columnFor[dimensionField[d]]
}
