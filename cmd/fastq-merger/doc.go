/*
fastq-merger merges paired-end Illumina reads by batching FLASH (run with its
default parameters) over one or more samples. Each sample's combined reads
land at <out-dir>/<sample>.fastq, and the per-sample pair statistics reported
by FLASH are aggregated into <out-dir>/merger_stats.tsv.

Sample usage, single sample:

	fastq-merger \
	    -n sampleA \
	    -r1 sampleA_R1.fastq.gz \
	    -r2 sampleA_R2.fastq.gz \
	    -o merged/

Batch mode takes a tab-delimited samples file whose header must contain
sample_name, read1 and read2 columns (any order, extra columns ignored):

	fastq-merger -f samples.tsv -o merged/

Sample names must be alphanumeric (underscores allowed); they become output
filenames. A failing sample does not stop the batch: it is reported, its
statistics row is omitted, and the process exits non-zero at the end.
*/
package main
