package ai

import "fmt"

// promptTemplate instructs the model to reply either with the
// no-findings sentinel or with labeled records separated by "---",
// which is the exact shape ParseResponse understands.
const promptTemplate = `You are a security code reviewer. Analyze the following source file for security vulnerabilities (injection, hardcoded secrets, insecure cryptography, unsafe deserialization, path traversal).

File: %s

Code:
%s

If the code has no security issues, reply with exactly:
NO_VULNERABILITIES_FOUND

Otherwise, reply with one record per issue, separated by a line containing only "---", in this format:
TYPE: <short category>
SEVERITY: <critical|high|medium|low>
DESCRIPTION: <one sentence explanation>
LINE: <line number, if known>

Do not add any other commentary.`

func buildPrompt(filename, code string) string {
	return fmt.Sprintf(promptTemplate, filename, code)
}
