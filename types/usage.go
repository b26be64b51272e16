package types

// Usage for the built-in types, in markdown.

const valuesUsage = "# values\n\n" +
	"A constant, a list or a weighted mapping.  Lists are used in\n" +
	"order, starting over at the end, unless `sample` is on.\n\n" +
	"```json\n" +
	`{"status": {"type": "values", "data": ["on", "off"], "config": {"sample": true}}}` + "\n" +
	`{"size": {"S": 0.5, "M": 0.3, "L": 0.2}}` + "\n" +
	"```\n"

const refUsage = "# ref\n\n" +
	"The values of a ref (or another field).\n\n" +
	"```json\n" +
	`{"refs": {"names": ["bob", "alice"]}, "name": {"type": "ref", "ref": "names"}}` + "\n" +
	"```\n"

const configRefUsage = "# config_ref\n\n" +
	"A ref that only holds config.  Fields point at it with the\n" +
	"`config_ref` option and get its options when they don't have\n" +
	"their own.\n\n" +
	"```json\n" +
	`{"refs": {"shared": {"type": "config_ref", "config": {"prefix": "x-"}}},` + "\n" +
	` "id": {"type": "range", "data": [1, 9], "config": {"config_ref": "shared"}}}` + "\n" +
	"```\n"

const rangeUsage = "# range\n\n" +
	"Counts from start to end (included) by step, then starts over.\n\n" +
	"```json\n" +
	`{"id:range": [0, 100, 5]}` + "\n" +
	"```\n"

const randRangeUsage = "# rand_range\n\n" +
	"A random number in [start, end).  Use `precision` to round.\n\n" +
	"```json\n" +
	`{"price:rand_range?precision=2": [0.5, 9.99]}` + "\n" +
	"```\n"

const randIntRangeUsage = "# rand_int_range\n\n" +
	"A random integer in [start, end].\n\n" +
	"```json\n" +
	`{"n:rand_int_range": [1, 10]}` + "\n" +
	"```\n"

const distributionUsage = "# distribution\n\n" +
	"A number from a distribution: `uniform(start, end)`,\n" +
	"`normal(mean, stddev, min, max)` (also `gauss`),\n" +
	"`lognormal(mean, stddev, min, max)` or `exponential(rate)`.\n\n" +
	"```json\n" +
	`{"age": {"type": "distribution", "data": "normal(mean=40, stddev=12, min=18)", "config": {"precision": 0}}}` + "\n" +
	"```\n"

const uuidUsage = "# uuid\n\n" +
	"A UUID.  The `variant` is 1, 4 (the default), 6 or 7.\n\n" +
	"```json\n" +
	`{"id:uuid?variant=4": {}}` + "\n" +
	"```\n"

const dateOptions = "Options:\n\n" +
	"- `start`: the first possible date (default now)\n" +
	"- `offset`: days to move the start back\n" +
	"- `duration_days`: how many days after the start (default 30)\n"

const dateUsage = "# date\n\n" +
	"A random date, formatted with `format` (strftime, like\n" +
	"`%d-%m-%Y`, or a Go layout).\n\n" + dateOptions + "\n" +
	"```json\n" +
	`{"dob": {"type": "date", "config": {"format": "%Y-%m-%d", "start": "1990-01-01", "duration_days": 3650}}}` + "\n" +
	"```\n"

const dateISOUsage = "# date.iso\n\n" +
	"A random date formatted as `2006-01-02T15:04:05`.\n\n" + dateOptions

const dateISOMillisUsage = "# date.iso.millis\n\n" +
	"A random date formatted as `2006-01-02T15:04:05.000`.\n\n" + dateOptions

const dateCronUsage = "# date.cron\n\n" +
	"Successive times a cron expression fires after `start`.\n\n" +
	"```json\n" +
	`{"when": {"type": "date.cron", "data": "*/15 9-17 * * MON-FRI", "config": {"start": "2024-01-01T00:00:00"}}}` + "\n" +
	"```\n"

const geoUsage = "Options: `start`, `end` and `precision` (default 4).\n"

const geoLatUsage = "# geo.lat\n\nA latitude in degrees.\n\n" + geoUsage

const geoLongUsage = "# geo.long\n\nA longitude in degrees.\n\n" + geoUsage

const geoPairUsage = "# geo.pair\n\n" +
	"\"long,lat\".  Options: `lat_start`, `lat_end`, `long_start`,\n" +
	"`long_end`, `precision`, `join_with`, `as_list` and `lat_first`.\n\n" +
	"```json\n" +
	`{"where:geo.pair?lat_first=true&precision=2": {}}` + "\n" +
	"```\n"

const selectListSubsetUsage = "# select_list_subset\n\n" +
	"A random subset of the data whose size is drawn from a normal\n" +
	"distribution (`mean`, `stddev`) clamped to [`min`, `max`].  With\n" +
	"`join_with` the subset is a string.\n\n" +
	"```json\n" +
	`{"tags": {"type": "select_list_subset", "data": ["a", "b", "c", "d"], "config": {"mean": 2, "stddev": 1, "join_with": " "}}}` + "\n" +
	"```\n"

const csvUsage = "# csv\n\n" +
	"Values from a column of a CSV file.  Options: `datafile` (relative\n" +
	"to the data directory), `column` (1-based, or a header name),\n" +
	"`headers`, `delimiter`, `sample` and `count`.\n\n" +
	"Big files are read in chunks.  They can't be sampled, and only\n" +
	"give one value per call.\n\n" +
	"```json\n" +
	`{"city": {"type": "csv", "config": {"datafile": "cities.csv", "headers": true, "column": "name"}}}` + "\n" +
	"```\n"

const csvSelectUsage = "# csv_select\n\n" +
	"Several csv fields from the same file.  The data maps each field\n" +
	"to a column (or to `{\"col\": ..., \"cast\": ...}`).\n\n" +
	"```json\n" +
	`{"placeholder": {"type": "csv_select", "data": {"first": 1, "age": {"col": 3, "cast": "int"}}, "config": {"datafile": "people.csv"}}}` + "\n" +
	"```\n"

const combineUsage = "# combine\n\n" +
	"The values of several refs (or fields), joined with `join_with`\n" +
	"or as a list with `as_list`.\n\n" +
	"```json\n" +
	`{"full_name": {"type": "combine", "refs": ["first", "last"], "config": {"join_with": " "}}}` + "\n" +
	"```\n"

const combineListUsage = "# combine-list\n\n" +
	"A combine over each of several lists of refs in turn.\n\n" +
	"```json\n" +
	`{"name": {"type": "combine-list", "refs": [["first", "last"], ["last", "first"]], "config": {"join_with": " "}}}` + "\n" +
	"```\n"

const weightedRefUsage = "# weighted_ref\n\n" +
	"The values of one of several refs, picked by weight.\n\n" +
	"```json\n" +
	`{"pet": {"type": "weighted_ref", "data": {"cats": 0.6, "dogs": 0.4}}}` + "\n" +
	"```\n"

const nestedUsage = "# nested\n\n" +
	"An object with its own fields (and field_groups).  With `count`\n" +
	"it's a list of objects; `as_list` makes a single object a list.\n\n" +
	"```json\n" +
	`{"user": {"type": "nested", "config": {"count": 2}, "fields": {"id:uuid": {}, "age:rand_int_range": [18, 99]}}}` + "\n" +
	"```\n"

const calculateUsage = "# calculate\n\n" +
	"Evaluates a formula with the values of its fields (or refs) as\n" +
	"`{{ name }}` placeholders.  A mapping gives an alias for each name.\n" +
	"Options: `interpreter` (default goja) and `timeout`.  A formula can\n" +
	"start with `require(\"lib.js\");` statements to pull in library files.\n\n" +
	"```json\n" +
	`{"total": {"type": "calculate", "fields": ["price", "qty"], "formula": "{{price}} * {{qty}}"}}` + "\n" +
	"```\n"

const templatedUsage = "# templated\n\n" +
	"Renders the template in the data with the values of its fields\n" +
	"(or refs).\n\n" +
	"```json\n" +
	`{"email": {"type": "templated", "data": "{{first}}.{{last}}@example.com", "fields": ["first", "last"]}}` + "\n" +
	"```\n"
