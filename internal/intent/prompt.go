// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package intent

import "fmt"

// buildIntentPrompt asks the model for a write/no-write decision in a
// fixed object shape.
func buildIntentPrompt(request string) string {
	return "You are an intent analysis expert. Decide whether the user is asking for " +
		"a complete document or article writing task.\n" +
		"Respond with JSON in this shape:\n" +
		"{\n" +
		"  \"should_write\": true|false,\n" +
		"  \"confidence\": decimal between 0 and 1,\n" +
		"  \"reason\": \"brief justification\"\n" +
		"}\n" +
		fmt.Sprintf("User request: %s", request)
}

// buildParameterPrompt asks the model for writing parameters, with a
// worked example so the response shape stays predictable.
func buildParameterPrompt(request string) string {
	return "You are a writing-parameter extraction agent. Return strict JSON with the " +
		"parameters the document needs.\n" +
		"Example:\n" +
		"{\n" +
		"  \"title\": \"An AI-Assisted Financial Risk Whitepaper\",\n" +
		"  \"topic\": \"artificial intelligence in financial risk control\",\n" +
		"  \"language\": \"en\",\n" +
		"  \"tone\": \"formal and credible\",\n" +
		"  \"audience\": \"bank risk teams\",\n" +
		"  \"paragraph_count\": 6,\n" +
		"  \"temperature\": 0.6,\n" +
		"  \"max_tokens\": 1500,\n" +
		"  \"keywords\": [\"model governance\", \"regulatory compliance\"],\n" +
		"  \"format\": \"whitepaper\"\n" +
		"}\n" +
		"Adapt paragraph count, tone, keywords, and sampling parameters to the request. " +
		"If the user specifies parameters explicitly, respect them.\n" +
		fmt.Sprintf("User request: %s", request)
}
