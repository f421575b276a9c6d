/*
Package runner implements the batch loop that reads query files and writes answers.

An input file is a sequence of lines. A line naming a network file (by a registered
extension such as .xml or .yaml) loads that network; every other non-empty line is a
query against the most recently loaded network:

	alarm_net.xml
	P(B=T|J=T,M=T) A-E
	B-E|
	B-E|J=T

Answers are written one per query through an OutputHandler. The text handler
produces the classic format ("0.28417,7,16", "yes", "no"); the JSON handler emits
one object per line for machine consumers.

# Usage

	r := runner.NewRunner(
		runner.WithLogger(logger),
		runner.WithOutputHandler(runner.NewTextHandler(out)),
	)

	stats, err := r.RunFile(ctx, "input.txt")
*/
package runner
