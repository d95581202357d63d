package corpus

// MaxLines is the highest numbered content slot read from a record.
const MaxLines = 20

// DefaultSampleSize bounds how many poems one session draws questions from.
const DefaultSampleSize = 1000

// Poem is a poem with its content slots compacted into ordered lines.
type Poem struct {
	Title   string   `json:"title" yaml:"title"`
	Author  string   `json:"author" yaml:"author"`
	Dynasty string   `json:"dynasty" yaml:"dynasty"`
	Lines   []string `json:"lines" yaml:"lines"`
	Note    string   `json:"note,omitempty" yaml:"note,omitempty"`
}

// Record is a raw poem object as it appears in a corpus file.
type Record map[string]any

// Field aliases accepted for the descriptive poem attributes. The first
// entry of each list is the key used by the original data export.
var (
	titleKeys   = []string{"名字", "title"}
	authorKeys  = []string{"作者", "author"}
	dynastyKeys = []string{"朝代", "dynasty"}
	noteKeys    = []string{"备注", "note"}
)

// linesKey holds an explicit list of lines, used when no slots are present.
const linesKey = "lines"
