package schema

import (
	"github.com/lsftools/lsbacct/pkg/models"
)

const (
	// EventJobFinish is event type tag of job finish record in lsb.acct
	EventJobFinish = "JOB_FINISH"

	versionField = "versionNumber"
)

// jobFinishFields is wire order of JOB_FINISH fields.
var jobFinishFields = []string{
	"eventType=s",
	"versionNumber=s",
	"eventTime=i",
	"jobId=i",
	"userId=i",
	"options=i",
	"numProcessors=i",
	"submitTime=i",
	"beginTime=i",
	"termTime=i",
	"startTime=i",
	"userName=s",
	"queue=s",
	"resReq=s",
	"dependCond=s",
	"preExecCmd=s",
	"fromHost=s",
	"cwd=s",
	"inFile=s",
	"outFile=s",
	"errFile=s",
	"jobFile=s",
	"numAskedHosts=i",
	"askedHosts=s{#}",
	"numExHosts=i",
	"execHosts=s{#}",
	"jStatus=i",
	"hostFactor=f",
	"jobName=s",
	"command=s",
	"ru_utime=f",
	"ru_stime=f",
	"ru_maxrss=f",
	"ru_ixrss=f",
	"ru_ismrss=f",
	"ru_idrss=f",
	"ru_isrss=f",
	"ru_minflt=f",
	"ru_majflt=f",
	"ru_nswap=f",
	"ru_inblock=f",
	"ru_oublock=f",
	"ru_ioch=f",
	"ru_msgsnd=f",
	"ru_msgrcv=f",
	"ru_nsignals=f",
	"ru_nvcsw=f",
	"ru_nivcsw=f",
	"ru_exutime=f",
	"mailUser=s",
	"projectName=s",
	"exitStatus=i",
	"maxNumProcessors=i",
	"loginShell=s",
	"timeEvent=s",
	"idx=i",
	"maxRMem=i",
	"maxRSwap=i",
	"inFileSpool=s",
	"commandSpool=s",
	"rsvId=s",
	"sla=s",
	"exceptMask=i",
	"additionalInfo=s",
	"exitInfo=i",
	// The lsb.acct documentation lists warningTimePeriod first, but actual
	// files have warningAction first.
	"warningAction=s",
	"warningTimePeriod=i",
	"chargedSAAP=s",
	"licenseProject=s",
	// options3 is documented but never appears in observed files.
	"app=s",
	"postExecCmd=s",
	"runtimeEstimation=i",
	"jobGroupName=s",
	"autoRequeueCodes=s",
	"unknown_1=i",
	"resizeNotifyCmd=s",
	"lastResizeTime=i",
	"rsvId_alternate=s",
	"jobDescription=s",
}

// jobFinishVersions maps LSF version to the last field of JOB_FINISH record.
var jobFinishVersions = map[string]string{
	"6.0":  "chargedSAAP",
	"7.06": "jobDescription",
}

// JobFinish builds Format of JOB_FINISH event.
func JobFinish() (*models.Format, error) {
	fields, err := models.ParseFields(jobFinishFields)
	if err != nil {
		return nil, err
	}

	return models.NewFormat(EventJobFinish, versionField, fields, jobFinishVersions)
}
