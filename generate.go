//go:generate gomarkdoc -e -f github -o README.md . --repository.url https://github.com/agentstation/bookmap --repository.default-branch master --repository.path /

package bookmap
