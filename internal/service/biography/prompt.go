package biography

import (
	"fmt"

	"github.com/sandevgo/bioprep/internal/record"
)

// OutputMarker closes the prompt; the model's answer follows it.
const OutputMarker = "Output: "

const promptTemplate = `Convert the following JSON biographical data into a flowing Persian text paragraph.

STRICT RULES:
- Only use information explicitly provided in the JSON
- Do NOT add any information not in the JSON
- Skip fields that are empty, missing or have no value
- Write only one paragraph in Persian

PROPERTY HANDLING:
- name: Start with the full name
- birth.date: Can be string OR object {year, month, day} - extract year if string
- death: Skip if missing or if its date is missing/empty
- occupation: If array, join with "و"
- works: If array of objects, extract titles only
- events: Extract title and description, ignore empty fields
- era: Include if not "نامشخص"

Example:
Input: {"name": "ابونصر منصور", "birth": {"date": "حدود 960", "location": {"city": "گیلان"}}, "occupation": "ستاره‌شناس، ریاضیدان", "works": ["مثلثات"], "death": {"date": "1036"}}
Output: ابونصر منصور، در حدود سال ۹۶۰ در گیلان به دنیا آمد و در سال ۱۰۳۶ درگذشت. او به‌عنوان ستاره‌شناس و ریاضیدان فعالیت می‌کرد. از آثار شاخص او می‌توان به "مثلثات" اشاره نمود.

Now convert this JSON:
%s

` + OutputMarker

// BuildPrompt embeds p as an indented JSON block into the conversion
// instructions. Field filtering is left to the model.
func BuildPrompt(p *record.Person) string {
	block, err := p.Indent()
	if err != nil {
		// values are validated JSON on the way in, so this only guards misuse
		block = "{}"
	}
	return fmt.Sprintf(promptTemplate, block)
}
