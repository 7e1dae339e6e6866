package template

import "github.com/chemtrack/sds-extractor/constants"

// StandardGHS returns the builtin template used when a caller does not name
// one. It mirrors a conventional chemical-register row: identity, hazard
// classification, physical properties, emergency measures, transport data.
// It exists as data so downstream registers can fork it into their own
// versions without engine changes.
func StandardGHS() *Template {
	return &Template{
		Name:    "standard-ghs",
		Version: 1,
		Fields: []FieldDef{
			{
				Name:    "product_name",
				Section: string(constants.SectionIdentification),
				Weight:  1.0,
				Rules: []Rule{
					{ID: "product-name-labeled", Type: constants.RulePattern,
						Pattern: `(?:product|trade|material|chemical)\s+(?:name|identifier)\s*[:\x{00B7}]?\s*([^\n]{2,120})`},
					{ID: "product-name-near", Type: constants.RuleProximity, Keyword: "product", Window: 10},
				},
			},
			{
				Name:       "cas_number",
				Section:    string(constants.SectionComposition),
				Weight:     1.0,
				Vocabulary: VocabCAS,
				Rules: []Rule{
					{ID: "cas-labeled", Type: constants.RulePattern,
						Pattern: `CAS(?:[\s-]*No\.?|[\s-]*Number)?\s*[:#]?\s*(\d{2,7}-\d{2}-\d)`},
					{ID: "cas-bare", Type: constants.RulePattern,
						Pattern: `\b(\d{2,7}-\d{2}-\d)\b`},
					{ID: "cas-near", Type: constants.RuleProximity, Keyword: "CAS", Window: 4},
				},
			},
			{
				Name:    "supplier",
				Section: string(constants.SectionIdentification),
				Weight:  1.0,
				Rules: []Rule{
					{ID: "supplier-known", Type: constants.RuleTable, Table: "suppliers"},
					{ID: "supplier-labeled", Type: constants.RulePattern,
						Pattern: `(?:company|supplier|manufacturer)(?:\s+name)?\s*:\s*([^\n;,]{3,80})`},
					{ID: "supplier-details", Type: constants.RulePattern,
						Pattern: `details\s+of\s+the\s+supplier[^:\n]*:\s*([^\n;,]{3,80})`},
					{ID: "supplier-near", Type: constants.RuleProximity, Keyword: "supplier", Window: 10},
				},
			},
			{
				Name:       "hazard_statements",
				Section:    string(constants.SectionHazards),
				Weight:     1.0,
				Vocabulary: VocabHazardCodes,
				Rules: []Rule{
					{ID: "h-labeled", Type: constants.RulePattern,
						Pattern: `hazard\s+statements?\s*:?\s*((?:H\d{3}(?:\+H\d{3})*[^\n]*\n?){1,12})`},
					{ID: "h-codes", Type: constants.RulePattern,
						Pattern: `\b(H\d{3}(?:\+H\d{3})*(?:[,;\s]+H\d{3}(?:\+H\d{3})*)*)\b`},
				},
			},
			{
				Name:       "precautionary_statements",
				Section:    string(constants.SectionHazards),
				Weight:     0.5,
				Vocabulary: VocabPrecautionary,
				Rules: []Rule{
					{ID: "p-labeled", Type: constants.RulePattern,
						Pattern: `precautionary\s+statements?\s*:?\s*((?:P\d{3}(?:\+P\d{3})*[^\n]*\n?){1,12})`},
					{ID: "p-codes", Type: constants.RulePattern,
						Pattern: `\b(P\d{3}(?:\+P\d{3})*(?:[,;\s]+P\d{3}(?:\+P\d{3})*)*)\b`},
				},
			},
			{
				Name:    "health_category",
				Section: string(constants.SectionHazards),
				Weight:  0.5,
				Rules: []Rule{
					{ID: "health-cat-named", Type: constants.RulePattern,
						Pattern: `(?:skin|eye|acute|reproductive|respiratory|STOT|carc|muta)[^,\n]{0,60}?(?:category|cat\.?)\s*(\d[A-C]?)`},
					{ID: "health-cat-abbrev", Type: constants.RulePattern,
						Pattern: `(?:eye\s+irrit|skin\s+irrit|skin\s+corr|acute\s+tox|skin\s+sens|resp\.\s+sens|asp\.\s+tox|carc|muta|repr|STOT\s+[SR]E)\.?\s*-?\s*(\d[A-C]?)`},
				},
			},
			{
				Name:    "physical_hazards",
				Section: string(constants.SectionHazards),
				Weight:  0.5,
				Rules: []Rule{
					{ID: "phys-named", Type: constants.RulePattern,
						Pattern: `(flammable\s+(?:liquid|solid|gas|aerosol)|self-reactive|pyrophoric|self-heating|oxidi[sz]ing|organic\s+peroxide|corrosive\s+to\s+metals?|explosive)`},
					{ID: "phys-abbrev", Type: constants.RulePattern,
						Pattern: `(flam\.\s*(?:liq|sol|gas)\.\s*\d|ox\.\s*(?:liq|sol|gas)\.\s*\d|pyr\.\s*(?:liq|sol)\.\s*\d|self-react\.\s*[A-G]|met\.\s*corr\.\s*\d|expl\.\s*\d)`},
				},
			},
			{
				Name:    "flash_point",
				Section: string(constants.SectionPhysicalChemical),
				Weight:  0.5,
				Rules: []Rule{
					{ID: "flash-labeled", Type: constants.RulePattern,
						Pattern: `flash[\s-]?point[^:\n]*:\s*([^\n;]{1,60})`},
					{ID: "flash-near", Type: constants.RuleProximity, Keyword: "flash", Window: 6},
				},
			},
			{
				Name:    "appearance",
				Section: string(constants.SectionPhysicalChemical),
				Weight:  0.25,
				Rules: []Rule{
					{ID: "appearance-labeled", Type: constants.RulePattern,
						Pattern: `(?:appearance|physical\s+state|form)[^:\n]*:\s*([^\n;,]{1,60})`},
					{ID: "appearance-known", Type: constants.RuleTable, Table: "physical_states"},
				},
			},
			{
				Name:    "colour",
				Section: string(constants.SectionPhysicalChemical),
				Weight:  0.25,
				Rules: []Rule{
					{ID: "colour-labeled", Type: constants.RulePattern,
						Pattern: `colou?r[^:\n]*:\s*([^\n;,]{1,40})`},
				},
			},
			{
				Name:    "odour",
				Section: string(constants.SectionPhysicalChemical),
				Weight:  0.25,
				Rules: []Rule{
					{ID: "odour-labeled", Type: constants.RulePattern,
						Pattern: `odou?r[^:\n]*:\s*([^\n;,0-9\x{00B0}]{1,40})`},
					{ID: "odour-known", Type: constants.RuleTable, Table: "odours"},
				},
			},
			{
				Name:    "first_aid",
				Section: string(constants.SectionFirstAid),
				Weight:  0.5,
				Rules: []Rule{
					{ID: "first-aid-inhalation", Type: constants.RulePattern,
						Pattern: `(?:if\s+inhaled|after\s+inhalation|inhalation)\s*:?\s*([^\n]{5,300})`},
					{ID: "first-aid-general", Type: constants.RulePattern,
						Pattern: `(?:general\s+advice|first[\s-]aid\s+measures)\s*:?\s*([^\n]{5,300})`},
				},
			},
			{
				Name:    "fire_fighting",
				Section: string(constants.SectionFireFighting),
				Weight:  0.5,
				Rules: []Rule{
					{ID: "extinguishing-media", Type: constants.RulePattern,
						Pattern: `(?:suitable\s+)?extinguishing\s+(?:media|agents)\s*:?\s*([^\n]{3,300})`},
					{ID: "fire-advice", Type: constants.RulePattern,
						Pattern: `advice\s+for\s+firefighters\s*:?\s*([^\n]{3,300})`},
				},
			},
			{
				Name:    "dangerous_goods_class",
				Section: string(constants.SectionTransport),
				Weight:  0.5,
				Rules: []Rule{
					{ID: "dg-class-labeled", Type: constants.RulePattern,
						Pattern: `(?:transport\s+hazard\s+class(?:\(es\))?|dangerous\s+goods\s+class|hazard\s+class)[^:\n]*:\s*([^\n;,]{1,40})`},
					{ID: "dg-class-mode", Type: constants.RulePattern,
						Pattern: `(?:ADR/RID|IMDG|IATA)[^:\n]*class[^:\n]*:\s*([^\n;,]{1,40})`},
				},
			},
			{
				Name:    "packing_group",
				Section: string(constants.SectionTransport),
				Weight:  0.25,
				Rules: []Rule{
					{ID: "packing-group-labeled", Type: constants.RulePattern,
						Pattern: `pack(?:ing|aging)\s+group[^:\n]*:\s*(I{1,3}|[^\n;,]{1,20})`},
					{ID: "packing-group-near", Type: constants.RuleProximity, Keyword: "packing", Window: 4},
				},
			},
			{
				Name:    "un_number",
				Section: string(constants.SectionTransport),
				Weight:  0.25,
				Rules: []Rule{
					{ID: "un-number-labeled", Type: constants.RulePattern,
						Pattern: `UN[\s-]?(?:no\.?|number)?\s*:?\s*(\d{4})\b`},
				},
			},
			{
				Name:       "issue_date",
				Section:    string(constants.SectionAny),
				Weight:     0.25,
				Vocabulary: VocabDate,
				Rules: []Rule{
					{ID: "issue-date-labeled", Type: constants.RulePattern,
						Pattern: `(?:issue|revision|print)\s+date[^:\n]*:\s*([^\n;,]{4,30})`},
					{ID: "issue-date-alt", Type: constants.RulePattern,
						Pattern: `(?:date\s+of\s+issue|revised|version\s+date)[^:\n]*:\s*([^\n;,]{4,30})`},
				},
			},
		},
	}
}
