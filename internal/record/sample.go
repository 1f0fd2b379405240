package record

// sampleJSON is the record the bio command falls back to when no input file is given.
const sampleJSON = `{
  "era": "دودمان پهلوی، جمهوری اسلامی ایران",
  "nick-names": [],
  "name": "کامبیز آتابای",
  "occupation": ["مدیر فوتبال", "مربی"],
  "death": {
    "date": "",
    "location": {
      "province": "",
      "city": "",
      "coordinates": {"latitude": "", "longitude": ""}
    },
    "tomb_location": {
      "province": "",
      "city": "",
      "coordinates": {"latitude": "", "longitude": ""}
    }
  },
  "works": [
    "مدیر کل فنی و خدمات عمومی در دربار پهلوی",
    "رئیس دفتر فرح پهلوی در نیویورک",
    "دهمین رئیس فدراسیون فوتبال ایران",
    "ششمین رئیس کنفدراسیون فوتبال آسیا"
  ],
  "birth": {
    "date": "1939-02-02",
    "location": {
      "province": "تهران",
      "city": "تهران",
      "coordinates": {"latitude": "35.6895", "longitude": "51.3890"}
    }
  },
  "image": ["https://commons.wikimedia.org/wiki/Special:FilePath/Kambiz_Atabay.jpg"],
  "sex": "male",
  "events": []
}`

func SamplePerson() *Person {
	p, err := ParsePerson([]byte(sampleJSON))
	if err != nil {
		panic("record: invalid sample: " + err.Error())
	}
	return p
}
