package vocab

// Builtin GHS statement tables. H2xx are physical hazards, H3xx health,
// H4xx environmental; P1xx-P5xx are precautionary statements grouped as
// general/prevention/response/storage/disposal.

var builtinHazard = map[string]string{
	// Physical (H2xx)
	"H200": "Unstable explosive",
	"H201": "Explosive; mass explosion hazard",
	"H220": "Extremely flammable gas",
	"H221": "Flammable gas",
	"H222": "Extremely flammable aerosol",
	"H223": "Flammable aerosol",
	"H224": "Extremely flammable liquid and vapour",
	"H225": "Highly flammable liquid and vapour",
	"H226": "Flammable liquid and vapour",
	"H228": "Flammable solid",
	"H240": "Heating may cause an explosion",
	"H241": "Heating may cause a fire or explosion",
	"H242": "Heating may cause a fire",
	"H250": "Catches fire spontaneously if exposed to air",
	"H251": "Self-heating; may catch fire",
	"H252": "Self-heating in large quantities; may catch fire",
	"H260": "In contact with water releases flammable gases which may ignite spontaneously",
	"H261": "In contact with water releases flammable gas",
	"H270": "May cause or intensify fire; oxidiser",
	"H271": "May cause fire or explosion; strong oxidiser",
	"H272": "May intensify fire; oxidiser",
	"H280": "Contains gas under pressure; may explode if heated",
	"H290": "May be corrosive to metals",

	// Health (H3xx)
	"H300":   "Fatal if swallowed",
	"H301":   "Toxic if swallowed",
	"H302":   "Harmful if swallowed",
	"H304":   "May be fatal if swallowed and enters airways",
	"H310":   "Fatal in contact with skin",
	"H311":   "Toxic in contact with skin",
	"H312":   "Harmful in contact with skin",
	"H314":   "Causes severe skin burns and eye damage",
	"H315":   "Causes skin irritation",
	"H317":   "May cause an allergic skin reaction",
	"H318":   "Causes serious eye damage",
	"H319":   "Causes serious eye irritation",
	"H320":   "Causes eye irritation",
	"H330":   "Fatal if inhaled",
	"H331":   "Toxic if inhaled",
	"H332":   "Harmful if inhaled",
	"H334":   "May cause allergy or asthma symptoms or breathing difficulties if inhaled",
	"H335":   "May cause respiratory irritation",
	"H336":   "May cause drowsiness or dizziness",
	"H340":   "May cause genetic defects",
	"H341":   "Suspected of causing genetic defects",
	"H350":   "May cause cancer",
	"H351":   "Suspected of causing cancer",
	"H360":   "May damage fertility or the unborn child",
	"H360F":  "May damage fertility",
	"H360D":  "May damage the unborn child",
	"H360FD": "May damage fertility. May damage the unborn child",
	"H361":   "Suspected of damaging fertility or the unborn child",
	"H370":   "Causes damage to organs",
	"H371":   "May cause damage to organs",
	"H372":   "Causes damage to organs through prolonged or repeated exposure",
	"H373":   "May cause damage to organs through prolonged or repeated exposure",

	// Environmental (H4xx)
	"H400": "Very toxic to aquatic life",
	"H410": "Very toxic to aquatic life with long lasting effects",
	"H411": "Toxic to aquatic life with long lasting effects",
	"H412": "Harmful to aquatic life with long lasting effects",
	"H413": "May cause long lasting harmful effects to aquatic life",
	"H420": "Harms public health and the environment by destroying ozone in the upper atmosphere",
}

var builtinPrecautionary = map[string]string{
	// General (P1xx)
	"P101": "If medical advice is needed, have product container or label at hand",
	"P102": "Keep out of reach of children",
	"P103": "Read label before use",

	// Prevention (P2xx)
	"P201": "Obtain special instructions before use",
	"P202": "Do not handle until all safety precautions have been read and understood",
	"P210": "Keep away from heat, hot surfaces, sparks, open flames and other ignition sources. No smoking",
	"P233": "Keep container tightly closed",
	"P240": "Ground and bond container and receiving equipment",
	"P241": "Use explosion-proof electrical, ventilating and lighting equipment",
	"P260": "Do not breathe dust, fume, gas, mist, vapours or spray",
	"P261": "Avoid breathing dust, fume, gas, mist, vapours or spray",
	"P264": "Wash hands thoroughly after handling",
	"P271": "Use only outdoors or in a well-ventilated area",
	"P273": "Avoid release to the environment",
	"P280": "Wear protective gloves, protective clothing, eye protection and face protection",

	// Response (P3xx)
	"P301": "IF SWALLOWED",
	"P302": "IF ON SKIN",
	"P303": "IF ON SKIN (or hair)",
	"P304": "IF INHALED",
	"P305": "IF IN EYES",
	"P308": "IF exposed or concerned",
	"P310": "Immediately call a POISON CENTER or doctor",
	"P312": "Call a POISON CENTER or doctor if you feel unwell",
	"P313": "Get medical advice/attention",
	"P321": "Specific treatment (see supplemental first aid instructions on this label)",
	"P330": "Rinse mouth",
	"P331": "Do NOT induce vomiting",
	"P337": "If eye irritation persists",
	"P338": "Remove contact lenses, if present and easy to do. Continue rinsing",
	"P351": "Rinse cautiously with water for several minutes",
	"P352": "Wash with plenty of water",
	"P361": "Take off immediately all contaminated clothing",
	"P362": "Take off contaminated clothing and wash it before reuse",
	"P370": "In case of fire",
	"P378": "Use dry sand, dry chemical or alcohol-resistant foam to extinguish",

	// Storage (P4xx)
	"P403": "Store in a well-ventilated place",
	"P405": "Store locked up",
	"P410": "Protect from sunlight",

	// Disposal (P5xx)
	"P501": "Dispose of contents and container in accordance with local, regional, national and international regulations",
}

// builtinTables holds the controlled vocabularies referenced by table-lookup
// rules in the builtin template. The supplier list covers the vendors most
// common across chemical SDS corpora.
var builtinTables = map[string][]string{
	"suppliers": {
		"Sigma-Aldrich",
		"Merck Life Science",
		"Merck",
		"MilliporeSigma",
		"Fisher Scientific",
		"Thermo Fisher Scientific",
		"Fluka",
		"Supelco",
		"Aldrich",
		"Honeywell",
		"VWR International",
		"Alfa Aesar",
		"TCI Chemicals",
		"Acros Organics",
	},
	"packing_groups": {"I", "II", "III"},
	"physical_states": {
		"liquid", "solid", "gas", "powder", "crystalline", "granular",
		"paste", "gel", "aerosol", "viscous liquid", "clear liquid",
	},
	"odours": {
		"odourless", "odorless", "amine", "ammonia", "fishy", "pungent",
		"sweet", "sour", "acrid", "aromatic", "alcohol", "ester",
		"characteristic", "mild", "solvent",
	},
}

// Locales whose all-numeric dates read day/month/year.
var builtinDayFirst = map[string]bool{
	"en-gb": true,
	"en-au": true,
	"en-nz": true,
	"en-ie": true,
	"de":    true,
	"de-de": true,
	"fr":    true,
	"fr-fr": true,
	"es":    true,
	"it":    true,
	"nl":    true,
}
