package decompose

import (
	"fmt"

	"clipforge/internal/domain"
)

// Violation is one structural defect found in a job graph.
type Violation struct {
	Path    string
	Message string
}

// GraphViolations checks the dependsOn relation for duplicate ids, dangling
// references and cycles. It is decoupled from the decomposition rules so
// graph integrity can be verified independently of how jobs are produced.
func GraphViolations(jobs []domain.Job) []Violation {
	var out []Violation

	index := make(map[string]int, len(jobs))
	for i, job := range jobs {
		if job.ID == "" {
			out = append(out, Violation{
				Path:    fmt.Sprintf("/jobs/%d/id", i),
				Message: "job id must not be empty",
			})
			continue
		}
		if _, dup := index[job.ID]; dup {
			out = append(out, Violation{
				Path:    fmt.Sprintf("/jobs/%d/id", i),
				Message: fmt.Sprintf("duplicate job id %q", job.ID),
			})
			continue
		}
		index[job.ID] = i
	}

	for i, job := range jobs {
		for j, dep := range job.DependsOn {
			if _, ok := index[dep]; !ok {
				out = append(out, Violation{
					Path:    fmt.Sprintf("/jobs/%d/dependsOn/%d", i, j),
					Message: fmt.Sprintf("depends on unknown job %q", dep),
				})
			}
		}
	}

	if cycle := findCycle(jobs, index); cycle != "" {
		out = append(out, Violation{
			Path:    "/jobs",
			Message: fmt.Sprintf("dependency cycle involving job %q", cycle),
		})
	}

	return out
}

// VerifyGraph returns an error wrapping domain.ErrGraphIntegrity when the
// graph is not a DAG or references unknown jobs. Decomposition is pure, so a
// violation here is a logic defect rather than bad input.
func VerifyGraph(jobs []domain.Job) error {
	violations := GraphViolations(jobs)
	if len(violations) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s: %s", domain.ErrGraphIntegrity, violations[0].Path, violations[0].Message)
}

// findCycle runs Kahn's algorithm and returns the id of one job left inside
// a cycle, or "" when the graph is acyclic. Dangling references are ignored
// here; they are reported separately.
func findCycle(jobs []domain.Job, index map[string]int) string {
	indegree := make(map[string]int, len(jobs))
	dependents := make(map[string][]string, len(jobs))
	for _, job := range jobs {
		if _, ok := indegree[job.ID]; !ok {
			indegree[job.ID] = 0
		}
		for _, dep := range job.DependsOn {
			if _, ok := index[dep]; !ok {
				continue
			}
			indegree[job.ID]++
			dependents[dep] = append(dependents[dep], job.ID)
		}
	}

	var ready []string
	for id, deg := range indegree {
		if deg == 0 {
			ready = append(ready, id)
		}
	}

	visited := 0
	for len(ready) > 0 {
		id := ready[len(ready)-1]
		ready = ready[:len(ready)-1]
		visited++
		for _, next := range dependents[id] {
			indegree[next]--
			if indegree[next] == 0 {
				ready = append(ready, next)
			}
		}
	}

	if visited == len(indegree) {
		return ""
	}
	for id, deg := range indegree {
		if deg > 0 {
			return id
		}
	}
	return ""
}
