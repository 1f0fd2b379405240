package face

// Unclear is what the model answers when no face can be made out.
const Unclear = "UNCLEAR"

// Prompt is sent unchanged with every set of portrait images.
const Prompt = `
Please analyze this facial image and provide a description in Persian following these rules:
1. The description must be concise and a maximum of two sentences.
2. Mention the main facial features such as face shape, nose, eyes, eyebrows, hair, mustache, beard and skin.
3. If an approximate age is detectable, mention it.
4. If the image is unclear or of low quality and the face cannot be recognized, just say "` + Unclear + `" (without quotes).

Example of valid description:
"مردی با صورت بیضی شکل، بینی مستقیم، چشمان قهوه‌ای متوسط، ابروهای پرپشت، موهای مشکی و ریش کوتاه. به نظر می‌رسد در دهه سوم زندگی باشد."

Example of unclear image response:
"` + Unclear + `"
`
