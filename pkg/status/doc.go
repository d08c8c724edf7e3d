/*
Package status tracks what happened to each retrieved file and performs the
file writes for the materializer.

	            +-------------+
	            |   Status    |
	            |  (Results)  |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	|  Manager  |           | Summary |
	|  (Disk)   |           | (Logs)  |
	+-----------+           +---------+

🎯 Purpose:
- Resolves destinations below a target directory
- Checks for existing entries and writes new files
- Records one FileResult per retrieved file
- Formats results for logs and the console

🔄 Flow:
1. The materializer resolves a destination with Manager.AbsPath
2. Manager.Exists decides between skipping and writing
3. Manager.WriteFile writes through a temp file and returns a checksum
4. The outcome is recorded in a Summary

📝 Design Philosophy:
Existing files are authoritative: nothing in this package overwrites,
compares or removes an entry that was already on disk. A failed write is a
result like any other, so callers can keep going with the next file.
*/
package status
