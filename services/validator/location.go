package validator

// Option is one entry of a cascading location dropdown.
type Option struct {
	Value string
	Label string
}

var states = []Option{
	{"gujarat", "Gujarat"},
	{"up", "Uttar Pradesh"},
	{"punjab", "Punjab"},
	{"haryana", "Haryana"},
}

var districts = map[string][]Option{
	"gujarat": {{"ahmedabad", "Ahmedabad"}, {"surat", "Surat"}, {"baroda", "Baroda"}},
	"up":      {{"lucknow", "Lucknow"}, {"kanpur", "Kanpur"}, {"agra", "Agra"}},
	"punjab":  {{"ludhiana", "Ludhiana"}, {"amritsar", "Amritsar"}, {"jalandhar", "Jalandhar"}},
	"haryana": {{"gurgaon", "Gurgaon"}, {"faridabad", "Faridabad"}, {"panipat", "Panipat"}},
}

// Surat and Baroda have no villages listed yet.
var villages = map[string][]Option{
	"ahmedabad": {{"viramgam", "Viramgam"}, {"kalol", "Kalol"}, {"mandal", "Mandal"}},
	"lucknow":   {{"malihabad", "Malihabad"}, {"bakshi-ka-talab", "Bakshi Ka Talab"}, {"mohanlalganj", "Mohanlalganj"}},
	"kanpur":    {{"bilhaur", "Bilhaur"}, {"ghatampur", "Ghatampur"}, {"derapur", "Derapur"}},
	"agra":      {{"fatehabad", "Fatehabad"}, {"kheragarh", "Kheragarh"}, {"bah", "Bah"}},
	"ludhiana":  {{"doraha", "Doraha"}, {"khanna", "Khanna"}, {"payal", "Payal"}},
	"amritsar":  {{"tarn-taran", "Tarn Taran"}, {"jandiala", "Jandiala Guru"}, {"rayya", "Rayya"}},
	"jalandhar": {{"nakodar", "Nakodar"}, {"phillaur", "Phillaur"}, {"adampur", "Adampur"}},
	"gurgaon":   {{"sohna", "Sohna"}, {"pataudi", "Pataudi"}, {"farukh-nagar", "Farukh Nagar"}},
	"faridabad": {{"ballabgarh", "Ballabgarh"}, {"tigaon", "Tigaon"}, {"palwal", "Palwal"}},
	"panipat":   {{"samalkha", "Samalkha"}, {"israna", "Israna"}, {"bapoli", "Bapoli"}},
}

// States lists the selectable states.
func States() []Option {
	return append([]Option(nil), states...)
}

// Districts lists the districts of a state, or nil.
func Districts(state string) []Option {
	return append([]Option(nil), districts[state]...)
}

// Villages lists the villages of a district, or nil.
func Villages(district string) []Option {
	return append([]Option(nil), villages[district]...)
}
